package mail

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/SudarshanShah/MovieApi/internal/mail Mailer

// Mailer is the notification sink for outbound email. Implementations
// report delivery failure but callers treat dispatch as fire-and-forget.
type Mailer interface {
	Send(to, subject, body string) error
}
