package extractor

// BuildBillPrompt returns the extraction instruction for electricity bill
// documents. The wording is Portuguese because the bills are Brazilian
// utility invoices and the field descriptions in the schema match it.
func BuildBillPrompt() string {
	return "Você é um assistente especialista em gerenciamento de energia. " +
		"Analise cada um dos seguintes arquivos (faturas em formato de imagem ou PDF). " +
		"Para cada arquivo, extraia as seguintes informações: Nome do titular, " +
		"Número da Instalação, Classe/Subclasse, Período de Referência (como AAAA-MM), " +
		"Data de Vencimento (como AAAA-MM-DD), Valor a Pagar (R$), " +
		"Consumo de Energia (kWh), Quantidade de Energia Compensada (kWh), " +
		"Preço Unitário (R$/kWh), e Saldo Atual de Geração (kWh). " +
		"Forneça a resposta como um array JSON que corresponda ao esquema fornecido. " +
		"Se um valor não puder ser encontrado, omita o campo ou use um valor nulo."
}

// ResponseSchema is the structured-output constraint handed to the extraction
// service: an array of candidate bill objects. The required list is a
// requested contract, not an enforced one; the service may still omit fields
// it cannot extract.
func ResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "ARRAY",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"company":              schemaField("STRING", "O nome da empresa ou titular da conta."),
				"installationNumber":   schemaField("STRING", "O número da instalação ou da unidade consumidora."),
				"billClass":            schemaField("STRING", "A classe ou subclasse de consumo (ex: Comercial, Residencial)."),
				"date":                 schemaField("STRING", "O mês de referência da conta no formato 'AAAA-MM'."),
				"dueDate":              schemaField("STRING", "A data de vencimento da conta no formato 'AAAA-MM-DD'."),
				"cost":                 schemaField("NUMBER", "O valor total a pagar da conta em Reais (BRL)."),
				"consumption":          schemaField("NUMBER", "O consumo total de energia em kWh."),
				"compensatedEnergyKwh": schemaField("NUMBER", "A quantidade de energia compensada (Geração Distribuída) em kWh."),
				"unitPrice":            schemaField("NUMBER", "O preço unitário da energia (Tarifa de Energia - TE) em R$/kWh."),
				"generationBalanceKwh": schemaField("NUMBER", "O saldo atual de créditos de geração de energia em kWh."),
			},
			"required": []string{"company", "date", "cost", "consumption", "installationNumber"},
		},
	}
}

func schemaField(fieldType, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        fieldType,
		"description": description,
	}
}
