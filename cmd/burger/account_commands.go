package main

import (
	"context"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/session"
)

type loginCommand struct{ *cli }

func (c *loginCommand) Name() string { return "login" }

func (c *loginCommand) Description() string {
	return "Sign in with --email and --password"
}

func (c *loginCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": *email, "password": *password}); err != nil {
		return err
	}

	user, err := c.app.Session.Login(ctx, burgerapi.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	c.out.Success("Signed in as %s <%s>", user.Name, user.Email)
	return nil
}

type registerCommand struct{ *cli }

func (c *registerCommand) Name() string { return "register" }

func (c *registerCommand) Description() string {
	return "Create an account with --email, --name and --password"
}

func (c *registerCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": *email, "name": *name, "password": *password}); err != nil {
		return err
	}

	user, err := c.app.Session.Register(ctx, burgerapi.RegisterRequest{Email: *email, Name: *name, Password: *password})
	if err != nil {
		return err
	}
	c.out.Success("Registered and signed in as %s <%s>", user.Name, user.Email)
	return nil
}

type logoutCommand struct{ *cli }

func (c *logoutCommand) Name() string { return "logout" }

func (c *logoutCommand) Description() string {
	return "Sign out and forget stored credentials"
}

func (c *logoutCommand) Run(ctx context.Context, _ []string) error {
	if err := c.app.Session.Logout(ctx); err != nil {
		return err
	}
	c.out.Success("Signed out")
	return nil
}

type profileCommand struct{ *cli }

func (c *profileCommand) Name() string { return "profile" }

func (c *profileCommand) Description() string {
	return "Show the signed-in profile"
}

func (c *profileCommand) Run(ctx context.Context, _ []string) error {
	if err := c.app.Session.Probe(ctx); err != nil {
		return err
	}
	user, ok := c.app.Session.User()
	if !ok {
		c.out.Warning("Not signed in")
		return nil
	}
	c.out.Header("Profile")
	c.out.Printf("  Name:  %s\n", user.Name)
	c.out.Printf("  Email: %s\n", user.Email)
	return nil
}

type updateProfileCommand struct{ *cli }

func (c *updateProfileCommand) Name() string { return "update-profile" }

func (c *updateProfileCommand) Description() string {
	return "Change --name, --email and/or --password"
}

func (c *updateProfileCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	var req burgerapi.UpdateUserRequest
	fs.StringVar(&req.Name, "name", "", "new display name")
	fs.StringVar(&req.Email, "email", "", "new email")
	fs.StringVar(&req.Password, "password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Name == "" && req.Email == "" && req.Password == "" {
		c.out.Warning("Nothing to change")
		return nil
	}

	user, err := c.app.Session.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	if req.HasPassword() {
		c.out.Success("Password changed, sign in again")
		return nil
	}
	c.out.Success("Profile updated: %s <%s>", user.Name, user.Email)
	return nil
}

type forgotPasswordCommand struct{ *cli }

func (c *forgotPasswordCommand) Name() string { return "forgot-password" }

func (c *forgotPasswordCommand) Description() string {
	return "Mail a password reset code to --email"
}

func (c *forgotPasswordCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": *email}); err != nil {
		return err
	}

	if err := c.app.Session.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	c.out.Success("Reset code sent, finish with '%s reset-password'", appName)
	return nil
}

type resetPasswordCommand struct{ *cli }

func (c *resetPasswordCommand) Name() string { return "reset-password" }

func (c *resetPasswordCommand) Description() string {
	return "Set a new --password with the mailed --token"
}

func (c *resetPasswordCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	password := fs.String("password", "", "new password")
	token := fs.String("token", "", "code from the reset email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"password": *password, "token": *token}); err != nil {
		return err
	}

	if err := c.app.Session.ResetPassword(ctx, *password, *token); err != nil {
		return err
	}
	c.out.Success("Password reset, sign in with the new password")
	return nil
}

type statusCommand struct{ *cli }

func (c *statusCommand) Name() string { return "status" }

func (c *statusCommand) Description() string {
	return "Show session state and pending password reset"
}

func (c *statusCommand) Run(ctx context.Context, _ []string) error {
	if err := c.app.Session.Probe(ctx); err != nil {
		return err
	}
	snap := c.app.Session.Snapshot()
	resetAllowed, err := c.app.Session.CanResetPassword(ctx)
	if err != nil {
		return err
	}

	c.out.Header("Status")
	c.out.Printf("  Backend: %s\n", c.app.Config.APIBaseURL)
	c.out.Printf("  Session: %s\n", label(string(snap.State)))
	if snap.State == session.StateAuthenticated && snap.User != nil {
		c.out.Printf("  User:    %s <%s>\n", snap.User.Name, snap.User.Email)
	}
	if resetAllowed {
		c.out.Printf("  Password reset requested\n")
	}
	return nil
}
