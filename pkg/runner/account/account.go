// Package account provides the CLI runners for logging in and out and for
// managing the signed in account.
package account

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

func report(c *app.Controller, out io.Writer) {
	pp := printers.PrettyPrint{Out: out}
	pp.Notification(c.Notifier().Current())
}

type Login struct {
	Controller  *app.Controller
	Credentials planner.Credentials
	Out         io.Writer
}

func (l *Login) Do(ctx context.Context) error {
	if l.Controller == nil {
		return errors.New("can not login, no controller")
	}
	err := l.Controller.Login(ctx, l.Credentials)
	report(l.Controller, l.Out)
	return err
}

type Logout struct {
	Controller *app.Controller
	Out        io.Writer
}

func (l *Logout) Do(_ context.Context) error {
	err := l.Controller.Logout()
	report(l.Controller, l.Out)
	return err
}

type Register struct {
	Controller   *app.Controller
	Registration planner.Registration
	Out          io.Writer
}

func (r *Register) Do(ctx context.Context) error {
	err := r.Controller.Register(ctx, r.Registration)
	report(r.Controller, r.Out)
	return err
}

type ResetPassword struct {
	Controller *app.Controller
	Email      string
	Out        io.Writer
}

func (r *ResetPassword) Do(ctx context.Context) error {
	err := r.Controller.RequestPasswordReset(ctx, r.Email)
	report(r.Controller, r.Out)
	return err
}

// WhoAmI prints the signed in user with their level, XP and streak.
type WhoAmI struct {
	Controller *app.Controller
	Format     string
	Out        io.Writer
}

func (w *WhoAmI) Do(ctx context.Context) error {
	if err := w.Controller.RefreshProfile(ctx); err != nil {
		report(w.Controller, w.Out)
		return err
	}
	u := w.Controller.Snapshot().User
	pp := printers.PrettyPrint{Out: w.Out}
	if handled, err := printers.Encode(pp.Writer(), w.Format, u); handled {
		return err
	}
	pp.NewLine()
	pp.Profile(u)
	return nil
}

type Email struct {
	Controller *app.Controller
	Email      string
	Out        io.Writer
}

func (e *Email) Do(ctx context.Context) error {
	err := e.Controller.ChangeEmail(ctx, e.Email)
	report(e.Controller, e.Out)
	return err
}

type Password struct {
	Controller *app.Controller
	Change     planner.PasswordChange
	Out        io.Writer
}

func (p *Password) Do(ctx context.Context) error {
	err := p.Controller.ChangePassword(ctx, p.Change)
	report(p.Controller, p.Out)
	return err
}
