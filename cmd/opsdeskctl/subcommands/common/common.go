package common

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"

	"github.com/youta-t/flarc"

	"github.com/monocle-dev/opsdesk/internal/client"
)

const (
	EnvURL   = "OPSDESK_URL"
	EnvToken = "OPSDESK_TOKEN"
)

type CommonFlags struct {
	URL   string `flag:"url" help:"base URL of the opsdesk API"`
	Token string `flag:"token" help:"bearer token issued by 'login'"`
}

// DefaultCommonFlags reads defaults from OPSDESK_URL and OPSDESK_TOKEN.
func DefaultCommonFlags() CommonFlags {
	flags := CommonFlags{
		URL:   os.Getenv(EnvURL),
		Token: os.Getenv(EnvToken),
	}
	if flags.URL == "" {
		flags.URL = "http://localhost:8080"
	}
	return flags
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	c *client.Client,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask picks the common flags out of the positional parameters and
// builds the client the task talks through.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix("[" + cl.Fullname() + "] ")

		c, err := client.New(commonFlag.URL, client.WithToken(commonFlag.Token))
		if err != nil {
			return err
		}
		return task(ctx, logger, c, cl, newpos)
	}
}

// Dump writes v as indented JSON.
func Dump(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
