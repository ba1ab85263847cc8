package email

// SendConfirmationCode mails a sign-up confirmation code.
func (c *Client) SendConfirmationCode(to, username, code string) error {
	data := map[string]string{
		"Username":         username,
		"ConfirmationCode": code,
	}

	return c.SendEmail(
		to,
		"Your YaMDb confirmation code",
		TemplateConfirmationCode,
		data,
	)
}
