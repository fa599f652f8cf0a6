package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/adapter"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/models"
)

// Usage lists the commands understood by [App.Run].
const Usage = `commands:
  register <username> <password> [email]
  login <username> <password>
  verify
  update [-bio text] [-avatar url] [-status text] [-experience n]
  feed [limit] [before]
  send <text...>
  edit <id> <text...>
  delete <id>
  profile <id>
  search <query>
  online
  friend add|remove <id>
  upload <path>
  version`

type App struct {
	adapter   adapter.ServerAdapter
	out       io.Writer
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		adapter:   serverAdapter,
		out:       out,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Run executes the command in args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", ErrUsage, Usage)
	}

	command, params := args[0], args[1:]
	a.logger.Debug().Str("command", command).Int("params", len(params)).Msg("running command")

	switch command {
	case "register", "login":
		return a.session(ctx, command, params)
	case "verify":
		return a.print(a.adapter.Verify(ctx))
	case "update":
		return a.update(ctx, params)
	case "feed":
		return a.feed(ctx, params)
	case "send":
		if len(params) == 0 {
			return usage("send <text...>")
		}
		return a.print(a.adapter.Send(ctx, strings.Join(params, " ")))
	case "edit":
		if len(params) < 2 {
			return usage("edit <id> <text...>")
		}
		id, err := parseID(params[0])
		if err != nil {
			return err
		}
		return a.print(a.adapter.Edit(ctx, id, strings.Join(params[1:], " ")))
	case "delete":
		id, err := singleID(params, "delete <id>")
		if err != nil {
			return err
		}
		if err = a.adapter.Delete(ctx, id); err != nil {
			return err
		}
		return a.print(models.StatusResponse{Message: "Message deleted"}, nil)
	case "profile":
		id, err := singleID(params, "profile <id>")
		if err != nil {
			return err
		}
		return a.print(a.adapter.Profile(ctx, id))
	case "search":
		if len(params) != 1 {
			return usage("search <query>")
		}
		return a.print(a.adapter.Search(ctx, params[0]))
	case "online":
		return a.print(a.adapter.Online(ctx))
	case "friend":
		return a.friend(ctx, params)
	case "upload":
		return a.upload(ctx, params)
	case "version":
		return a.version(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, command, Usage)
	}
}

func (a *App) session(ctx context.Context, command string, params []string) error {
	if len(params) < 2 || (command == "login" && len(params) != 2) || len(params) > 3 {
		return usage(command + " <username> <password>")
	}

	credentials := models.Credentials{Username: params[0], Password: params[1]}
	if len(params) == 3 {
		credentials.Email = params[2]
	}

	if command == "register" {
		return a.print(a.adapter.Register(ctx, credentials))
	}
	return a.print(a.adapter.Login(ctx, credentials))
}

func (a *App) update(ctx context.Context, params []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	bio := fs.String("bio", "", "profile bio")
	avatar := fs.String("avatar", "", "avatar URL")
	status := fs.String("status", "", "online status")
	experience := fs.Int64("experience", -1, "experience points")
	if err := fs.Parse(params); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	// only flags given on the command line become part of the update
	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bio":
			update.Bio = bio
		case "avatar":
			update.AvatarURL = avatar
		case "status":
			update.OnlineStatus = status
		case "experience":
			update.Experience = experience
		}
	})
	if update.IsEmpty() {
		return usage("update [-bio text] [-avatar url] [-status text] [-experience n]")
	}

	return a.print(a.adapter.UpdateProfile(ctx, update))
}

func (a *App) feed(ctx context.Context, params []string) error {
	if len(params) > 2 {
		return usage("feed [limit] [before]")
	}

	var request models.FeedRequest
	if len(params) > 0 {
		limit, err := strconv.Atoi(params[0])
		if err != nil || limit <= 0 {
			return fmt.Errorf("%w: limit must be a positive integer", ErrUsage)
		}
		request.Limit = limit
	}
	if len(params) == 2 {
		before, err := parseID(params[1])
		if err != nil {
			return err
		}
		request.Before = before
	}

	return a.print(a.adapter.Feed(ctx, request))
}

func (a *App) friend(ctx context.Context, params []string) error {
	if len(params) != 2 {
		return usage("friend add|remove <id>")
	}
	id, err := parseID(params[1])
	if err != nil {
		return err
	}

	switch params[0] {
	case models.FriendActionAdd:
		return a.print(a.adapter.AddFriend(ctx, id))
	case models.FriendActionRemove:
		return a.print(a.adapter.RemoveFriend(ctx, id))
	default:
		return usage("friend add|remove <id>")
	}
}

func (a *App) upload(ctx context.Context, params []string) error {
	if len(params) != 1 {
		return usage("upload <path>")
	}

	data, err := os.ReadFile(params[0])
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	fileName := filepath.Base(params[0])
	request := models.UploadRequest{
		File:     base64.StdEncoding.EncodeToString(data),
		FileName: fileName,
		FileType: mime.TypeByExtension(filepath.Ext(fileName)),
	}

	return a.print(a.adapter.Upload(ctx, request))
}

func (a *App) version(ctx context.Context) error {
	serverVersion, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	return a.print(map[string]string{
		"client":       a.buildInfo.BuildVersion(),
		"clientDate":   a.buildInfo.BuildDate(),
		"clientCommit": a.buildInfo.BuildCommit(),
		"server":       serverVersion,
	}, nil)
}

// print writes v as indented JSON unless err is set.
func (a *App) print(v any, err error) error {
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func usage(form string) error {
	return fmt.Errorf("%w: %s", ErrUsage, form)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive id", ErrUsage, raw)
	}
	return id, nil
}

func singleID(params []string, form string) (int64, error) {
	if len(params) != 1 {
		return 0, usage(form)
	}
	return parseID(params[0])
}
