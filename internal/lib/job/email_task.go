package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskConfirmationCode is the task type that mails a sign-up code.
const TaskConfirmationCode = "email:confirmation_code"

// ConfirmationCodePayload is the JSON payload of TaskConfirmationCode.
type ConfirmationCodePayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

// NewConfirmationCodeTask builds the task. Codes unlock accounts, so the task
// goes to the critical queue and is retried a few times before giving up.
func NewConfirmationCodeTask(to, username, code string) (*asynq.Task, error) {
	payload, err := json.Marshal(ConfirmationCodePayload{
		To:       to,
		Username: username,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskConfirmationCode,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
