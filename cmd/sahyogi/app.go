package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/sahyogi/sahyogi-backend/pkg/client"
)

var errUsage = errors.New("usage")

type app struct {
	api         *client.Client
	sessionPath string
	out         io.Writer
}

func newApp(baseURL, sessionPath string, out io.Writer) (*app, error) {
	session, err := client.LoadSession(sessionPath)
	if err != nil {
		return nil, err
	}
	return &app{
		api:         client.New(baseURL, client.WithSession(session)),
		sessionPath: sessionPath,
		out:         out,
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	commands := map[string]func(context.Context, []string) error{
		"login":     a.login,
		"logout":    a.logout,
		"whoami":    a.whoami,
		"register":  a.register,
		"follow":    a.followCmd("follow"),
		"unfollow":  a.followCmd("unfollow"),
		"followers": a.followers,
		"posts":     a.posts,
		"post":      a.post,
		"contact":   a.contact,
		"feedback":  a.feedback,
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return errUsage
	}
	return cmd(ctx, args[1:])
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	kind := fs.String("kind", "user", "account kind")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := client.ParseKind(*kind)
	if err != nil {
		return err
	}
	acc, err := a.api.Login(ctx, k, *email, *password)
	if err != nil {
		return err
	}
	if err := a.api.Session().Save(a.sessionPath); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s (%s) until %s\n", acc.Name, k, a.api.Session().ExpiresAt().Format(time.RFC1123))
	return nil
}

func (a *app) logout(_ context.Context, _ []string) error {
	a.api.Logout()
	if err := a.api.Session().Save(a.sessionPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	acc, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	return a.print(acc)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	kind := fs.String("kind", "user", "account kind")
	var req client.RegisterRequest
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.Phone, "phone", "", "phone")
	fs.StringVar(&req.Website, "website", "", "website (ngo)")
	fs.StringVar(&req.RegistrationNumber, "registration", "", "registration number (ngo)")
	fs.StringVar(&req.Organization, "organization", "", "organization (socialworker)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := client.ParseKind(*kind)
	if err != nil {
		return err
	}
	acc, err := a.api.Register(ctx, k, req)
	if err != nil {
		return err
	}
	return a.print(acc)
}

func (a *app) followCmd(action string) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		k, id, err := kindAndID(action, args)
		if err != nil {
			return err
		}

		var res *client.FollowResult
		if action == "follow" {
			res, err = a.api.Follow(ctx, k, id)
		} else {
			res, err = a.api.Unfollow(ctx, k, id)
		}
		if err != nil {
			return err
		}
		return a.print(res)
	}
}

func (a *app) followers(ctx context.Context, args []string) error {
	k, id, err := kindAndID("followers", args)
	if err != nil {
		return err
	}
	res, err := a.api.Followers(ctx, k, id)
	if err != nil {
		return err
	}
	return a.print(res)
}

func (a *app) posts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	var f client.PostFilter
	fs.StringVar(&f.Type, "type", "", "post type")
	fs.StringVar(&f.AuthorID, "author", "", "author id")
	fs.StringVar(&f.AuthorType, "author-type", "", "author role")
	fs.StringVar(&f.Tag, "tag", "", "tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.api.Posts(ctx, f)
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "%s  %-11s  %s  (%d likes, %d views)\n", p.ID, p.Type, p.Title, p.Likes, p.Views)
	}
	return nil
}

func (a *app) post(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.api.Post(ctx, args[0])
	if err != nil {
		return err
	}
	return a.print(p)
}

func (a *app) contact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	var req client.ContactRequest
	fs.StringVar(&req.Name, "name", "", "your name")
	fs.StringVar(&req.Email, "email", "", "your email")
	fs.StringVar(&req.Phone, "phone", "", "phone")
	fs.StringVar(&req.Subject, "subject", "", "subject")
	fs.StringVar(&req.Message, "message", "", "message")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.api.Contact(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "message sent")
	return nil
}

func (a *app) feedback(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feedback", flag.ContinueOnError)
	var req client.FeedbackRequest
	fs.StringVar(&req.Name, "name", "", "your name")
	fs.StringVar(&req.Email, "email", "", "your email")
	fs.IntVar(&req.Rating, "rating", 0, "rating 1-5")
	fs.StringVar(&req.Category, "category", "", "general|bug|feature|content|other")
	fs.StringVar(&req.Comment, "comment", "", "comment")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.api.Feedback(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "thank you for your feedback")
	return nil
}

func kindAndID(name string, args []string) (client.Kind, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	kind := fs.String("kind", "ngo", "ngo or socialworker")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if fs.NArg() != 1 {
		return "", "", errUsage
	}
	k, err := client.ParseKind(*kind)
	if err != nil {
		return "", "", err
	}
	return k, fs.Arg(0), nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
