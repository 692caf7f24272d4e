// Command dashboard is a terminal client for the bill API: it uploads bill
// documents for extraction and browses or edits the resulting bill set.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"contaluz/internal/dashboard"
	"contaluz/internal/domain"
	"contaluz/internal/extractor"
	"contaluz/internal/port"
)

var extToMIME = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type app struct {
	state   *dashboard.State
	confirm *dashboard.Confirmer
	client  *dashboard.Client
	autoYes bool
}

// commands maps each subcommand name to its handler. Args are the tokens
// after the subcommand.
var commands = map[string]func(*app, context.Context, []string) error{
	"list":        (*app).cmdList,
	"summary":     (*app).cmdSummary,
	"process":     (*app).cmdProcess,
	"toggle-paid": (*app).cmdTogglePaid,
	"toggle-type": (*app).cmdToggleType,
	"discount":    (*app).cmdDiscount,
	"delete":      (*app).cmdDelete,
}

func main() {
	fs := ff.NewFlagSet("contaluz-dashboard")
	var (
		serverURL = fs.StringLong("server", "http://localhost:8080", "Bill API base URL")
		email     = fs.StringLong("email", "", "Login email")
		password  = fs.StringLong("password", "", "Login password (or set CONTALUZ_PASSWORD env var)")
		autoYes   = fs.BoolLong("yes", "Answer yes to confirmation prompts")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CONTALUZ"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := fs.GetArgs()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "commands: list, summary, process <file...>, toggle-paid <id>, toggle-type <id>, discount <id> <percent>, delete <id>")
		os.Exit(1)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := dashboard.NewClient(*serverURL)
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "error: --email and --password are required")
		os.Exit(1)
	}
	if err := client.Login(ctx, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	confirm := dashboard.NewConfirmer()
	a := &app{
		state:   dashboard.NewState(client, confirm),
		confirm: confirm,
		client:  client,
		autoYes: *autoYes,
	}

	if err := cmd(a, ctx, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) cmdList(ctx context.Context, _ []string) error {
	if err := a.state.Refresh(ctx); err != nil {
		return err
	}
	return a.printRows()
}

func (a *app) cmdSummary(ctx context.Context, _ []string) error {
	if err := a.state.Refresh(ctx); err != nil {
		return err
	}
	s := a.state.Summary()
	fmt.Printf("Total de contas:            %d\n", s.TotalBills)
	fmt.Printf("Consumo total (kWh):        %.2f\n", s.TotalConsumption)
	fmt.Printf("Energia compensada (kWh):   %.2f\n", s.TotalCompensatedKwh)
	fmt.Printf("Saldo de geração (kWh):     %.2f\n", s.TotalGenerationKwh)
	fmt.Printf("Custo total (R$):           %.2f\n", s.TotalCost)
	return nil
}

func (a *app) cmdProcess(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("process requires at least one file")
	}

	docs := make([]port.BillDocument, 0, len(args))
	for _, path := range args {
		mimeType, ok := extToMIME[strings.ToLower(filepath.Ext(path))]
		if !ok || !domain.AllowedContentTypes[mimeType] {
			return fmt.Errorf("unsupported file type: %s", path)
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		doc, err := extractor.EncodeDocument(f, mimeType)
		f.Close()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	message, err := a.client.Process(ctx, docs)
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}

func (a *app) cmdTogglePaid(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	row, err := a.state.TogglePaid(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("conta %d: paga=%v\n", row.ID, row.Paid)
	return nil
}

func (a *app) cmdToggleType(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	row, err := a.state.ToggleCompensationType(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("conta %d: tipo=%s\n", row.ID, row.CompensatedEnergyType)
	return nil
}

func (a *app) cmdDiscount(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("discount requires <id> <percent>")
	}
	id, err := parseID(args[:1])
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid percent: %s", args[1])
	}

	row, err := a.state.SetDiscount(ctx, id, value)
	if err != nil {
		if row != nil {
			fmt.Printf("mantendo desconto anterior de %.1f%%\n", derefDiscount(row))
		}
		return err
	}
	fmt.Printf("conta %d: desconto=%.1f%%\n", row.ID, derefDiscount(row))
	return nil
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	go a.answerConfirmations(ctx, id)

	row, err := a.state.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("conta %d (%s, %s) excluída\n", row.ID, row.Company, row.Date)
	return nil
}

// answerConfirmations resolves pending confirmation requests, prompting on
// stdin unless --yes was given.
func (a *app) answerConfirmations(ctx context.Context, id int64) {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
		for _, pending := range a.confirm.Pending() {
			approved := a.autoYes
			if !a.autoYes {
				fmt.Printf("excluir a conta %d? [s/N] ", id)
				line, err := reader.ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				approved = err == nil && (answer == "s" || answer == "sim" || answer == "y" || answer == "yes")
			}
			_ = a.confirm.Resolve(pending, approved)
		}
	}
}

func (a *app) printRows() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	titles := make([]string, len(dashboard.TableColumns))
	for i, col := range dashboard.TableColumns {
		titles[i] = col.Title
	}
	fmt.Fprintln(w, strings.Join(titles, "\t"))

	for _, row := range a.state.Rows() {
		cells := make([]string, len(dashboard.TableColumns))
		for i, col := range dashboard.TableColumns {
			cells[i] = col.Value(&row)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one bill id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bill id: %s", args[0])
	}
	return id, nil
}

func derefDiscount(row *dashboard.BillRow) float64 {
	if row.ContractedDiscount == nil {
		return 0
	}
	return *row.ContractedDiscount
}
