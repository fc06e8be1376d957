package usecase

import (
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
)

// Reporter turns action outcomes into notifications and log lines.
type Reporter struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewReporter(notifier Notifier, logger *zap.Logger) Reporter {
	if notifier == nil {
		notifier = Nop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Reporter{notifier: notifier, logger: logger}
}

func (r Reporter) Logger() *zap.Logger {
	if r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}

func (r Reporter) notify(level Level, message string) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(level, message)
}

func (r Reporter) Success(message string) {
	r.notify(LevelPositive, message)
}

func (r Reporter) Warning(message string) {
	r.notify(LevelWarning, message)
}

// Failure notifies message and returns err unchanged.
func (r Reporter) Failure(err error, message string) error {
	r.Logger().Warn(message, zap.Error(err))
	r.notify(LevelNegative, message)
	return err
}

// FailureDetail prefers the message the backend sent over fallback.
func (r Reporter) FailureDetail(err error, fallback string) error {
	return r.Failure(err, Detail(err, fallback))
}

// Detail returns the user-facing message carried by err, or fallback when err
// carries none worth showing.
func Detail(err error, fallback string) string {
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Message == "" {
		return fallback
	}
	switch dErr.Code {
	case domain.ErrCodeInvalid, domain.ErrCodeConflict, domain.ErrCodeNotFound, domain.ErrCodeForbidden:
		return dErr.Message
	default:
		return fallback
	}
}

// Deferrable reports whether err means the request never got an answer, so
// queuing it for later delivery makes sense.
func Deferrable(err error) bool {
	return domain.IsDomainError(err, domain.ErrCodeTransport)
}

// DeferredMessage is shown when a submission was queued instead of sent.
const DeferredMessage = "Sem conexão. O envio será feito automaticamente quando a conexão voltar."
