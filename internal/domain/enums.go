package domain

// CompensationType classifies where compensated energy credits come from.
type CompensationType string

const (
	CompensationInternal CompensationType = "INTERNA"
	CompensationExternal CompensationType = "EXTERNA"
)

// Toggle returns the other compensation variant.
func (t CompensationType) Toggle() CompensationType {
	if t == CompensationInternal {
		return CompensationExternal
	}
	return CompensationInternal
}

// UserRole defines the account role. Admins manage accounts; everyone owns
// only their own bills.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AllowedContentTypes lists the upload media types the extraction service
// accepts.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}
