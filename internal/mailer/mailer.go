package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTP struct {
	logger *zap.Logger
	addr   string
	auth   smtp.Auth
	from   string
	send   sendFunc
}

func NewSMTP(logger *zap.Logger, host string, port int, login, password, from string) *SMTP {
	return &SMTP{
		logger: logger,
		addr:   host + ":" + strconv.Itoa(port),
		auth:   smtp.PlainAuth("", login, password, host),
		from:   from,
		send:   smtp.SendMail,
	}
}

func (m *SMTP) SendTemporaryPassword(ctx context.Context, user *model.User, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(m.from, user.Email, "Your account has been created",
		"Hello, "+user.FirstName+"!\r\n\r\n"+
			"An account has been created for you.\r\n"+
			"Your temporary password is: "+password+"\r\n")
	if err := m.send(m.addr, m.auth, m.from, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", user.Email, err)
	}
	m.logger.Debug("Temporary password has been sent", zap.String("email", user.Email))
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

/* Используется, когда SMTP не настроен.
 * Пароль попадает в лог только при reveal (режим DEV). */
type Log struct {
	logger *zap.Logger
	reveal bool
}

func NewLog(logger *zap.Logger, reveal bool) *Log {
	return &Log{logger: logger, reveal: reveal}
}

func (m *Log) SendTemporaryPassword(_ context.Context, user *model.User, password string) error {
	if m.reveal {
		m.logger.Info("Temporary password issued",
			zap.String("email", user.Email),
			zap.String("password", password))
		return nil
	}
	m.logger.Warn("Temporary password issued but no mail transport is configured",
		zap.String("email", user.Email))
	return nil
}
