package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/osse101/BurgerClient_Go/internal/bootstrap"
	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// cli is shared by every command
type cli struct {
	app *bootstrap.App
	out printer
}

func newCLI(app *bootstrap.App, w io.Writer, color bool) *cli {
	return &cli{app: app, out: printer{w: w, color: color}}
}

// newFlags creates a flag set that reports errors instead of exiting
func (c *cli) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out.w)
	return fs
}

// stringList is a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// required reports the first empty flag by name
func required(flags map[string]string) error {
	for _, name := range []string{"email", "name", "password", "token"} {
		if v, ok := flags[name]; ok && v == "" {
			return fmt.Errorf("%w: --%s is required", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// errorMessage is the text shown for a failed command
func errorMessage(err error) string {
	return domain.Message(err, domain.ErrMsgGenericAPI)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// registerCommands adds every command to r
func registerCommands(r *Registry, c *cli) {
	for _, cmd := range []Command{
		&ingredientsCommand{c},
		&buildCommand{c},
		&feedCommand{c},
		&ordersCommand{c},
		&orderCommand{c},
		&loginCommand{c},
		&registerCommand{c},
		&logoutCommand{c},
		&profileCommand{c},
		&updateProfileCommand{c},
		&forgotPasswordCommand{c},
		&resetPasswordCommand{c},
		&statusCommand{c},
	} {
		r.Register(cmd)
	}
}
