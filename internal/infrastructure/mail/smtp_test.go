package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSMTPMailer_Send(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  []byte
		gotAuth smtp.Auth
	)
	m := NewSMTPMailer(Config{
		Host: "smtp.example.com", Port: 587,
		Username: "user", Password: "pw",
		From: "no-reply@example.com",
	})
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	m.send = func(addr string, a smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, a, to, msg
		return nil
	}

	if err := m.Send(context.Background(), "jane@example.com", "Reset", "<p>hi</p>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotAuth == nil {
		t.Error("expected PLAIN auth when a username is set")
	}
	if len(gotTo) != 1 || gotTo[0] != "jane@example.com" {
		t.Errorf("to = %v", gotTo)
	}
	msg := string(gotMsg)
	for _, want := range []string{"Subject: Reset\r\n", "Content-Type: text/html", "\r\n\r\n<p>hi</p>"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "localhost", Port: 25, From: "a@b.c"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }

	if err := m.Send(context.Background(), "x@y.z", "s", "b"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "localhost", Port: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, "x@y.z", "s", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	if err := m.Send(context.Background(), "jane@example.com", "Reset", "link"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(buf.String(), "jane@example.com") {
		t.Errorf("log should mention the recipient: %s", buf.String())
	}
}
