package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleConfirmationCodeTask sends the confirmation email. A returned error
// makes asynq retry the task; a malformed payload is never retried.
func (j *JobService) handleConfirmationCodeTask(ctx context.Context, t *asynq.Task) error {
	var p ConfirmationCodePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal confirmation code payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskConfirmationCode).
		Str("to", p.To).
		Str("username", p.Username).
		Logger()

	logger.Info().Msg("processing confirmation code email task")

	if err := j.mailer.SendConfirmationCode(p.To, p.Username, p.Code); err != nil {
		logger.Error().Err(err).Msg("failed to send confirmation code email")
		return err
	}

	logger.Info().Msg("sent confirmation code email")
	return nil
}
