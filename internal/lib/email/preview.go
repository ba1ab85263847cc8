package email

// PreviewData holds sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateConfirmationCode: {
		"Username":         "reviewer42",
		"ConfirmationCode": "48151623",
	},
}
