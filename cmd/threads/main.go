package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/app"
	"github.com/anonto42/threads-go-client/internal/models"
	"github.com/anonto42/threads-go-client/internal/notify"
	"github.com/anonto42/threads-go-client/internal/store"
	"github.com/anonto42/threads-go-client/pkg/config"
)

const usage = `Usage: threads <command> [arguments]

Commands:
  feed                       show the post feed
  profile <user-id>          show a user's profile
  whoami                     show the logged-in user
  login <email> <password>   log in
  register <username> <email> <password>
  logout                     log out
  post <text> [image-file]   create a post
  reply <post-id> <text> [image-file]
  like <id>                  toggle a like on a post or reply
  edit <post-id> <text>      edit an own post
  delete <post-id>           delete an own post (asks for confirmation)
  avatar <image-file>        upload an avatar ("avatar -" removes it)
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	notifier := notify.NewConsoleNotifier(os.Stderr)
	a, err := app.New(cfg, notifier, logger)
	if err != nil {
		logger.Fatal("failed to initialize client", zap.Error(err))
	}

	ctx := context.Background()
	if err := a.Sessions.Restore(ctx); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}

	if err := run(ctx, a, args[0], args[1:]); err != nil {
		if errors.Is(err, store.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, command string, args []string) error {
	switch command {
	case "feed":
		return showFeed(ctx, a)
	case "profile":
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		return showProfile(ctx, a, id)
	case "whoami":
		return whoami(a)
	case "login":
		if len(args) < 2 {
			return errors.New("usage: threads login <email> <password>")
		}
		_, err := a.Sessions.Login(ctx, args[0], args[1])
		return err
	case "register":
		if len(args) < 3 {
			return errors.New("usage: threads register <username> <email> <password>")
		}
		_, err := a.Sessions.Register(ctx, args[0], args[1], args[2])
		return err
	case "logout":
		return a.Sessions.Logout()
	case "post":
		if err := requireLogin(a); err != nil {
			return err
		}
		if len(args) < 1 {
			return errors.New("usage: threads post <text> [image-file]")
		}
		image, cleanup, err := optionalImage(args, 1)
		if err != nil {
			return err
		}
		defer cleanup()
		_, err = a.Dispatcher.CreatePost(ctx, args[0], image)
		return err
	case "reply":
		if err := requireLogin(a); err != nil {
			return err
		}
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return errors.New("usage: threads reply <post-id> <text> [image-file]")
		}
		image, cleanup, err := optionalImage(args, 2)
		if err != nil {
			return err
		}
		defer cleanup()
		_, err = a.Dispatcher.CreateReply(ctx, id, args[1], image)
		return err
	case "like":
		if err := requireLogin(a); err != nil {
			return err
		}
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		if _, err := a.Posts.Posts(ctx); err != nil {
			return err
		}
		_, err = a.Dispatcher.ToggleLike(ctx, id)
		return err
	case "edit":
		if err := requireLogin(a); err != nil {
			return err
		}
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return errors.New("usage: threads edit <post-id> <text>")
		}
		_, err = a.Dispatcher.UpdatePost(ctx, id, args[1])
		return err
	case "delete":
		if err := requireLogin(a); err != nil {
			return err
		}
		id, err := parseID(args, 0)
		if err != nil {
			return err
		}
		return a.Dispatcher.DeletePost(ctx, id, confirmOnStdin)
	case "avatar":
		if err := requireLogin(a); err != nil {
			return err
		}
		if len(args) < 1 {
			return errors.New("usage: threads avatar <image-file>")
		}
		if args[0] == "-" {
			return a.Sessions.DeleteAvatar(ctx)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = a.Sessions.UploadAvatar(ctx, api.Upload{
			Filename: filepath.Base(args[0]),
			Reader:   f,
		})
		return err
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireLogin is the view-layer auth gate: a mutating intent from an
// anonymous viewer never reaches the dispatcher, it turns into a login
// prompt instead.
func requireLogin(a *app.App) error {
	if a.Session.Authenticated() {
		return nil
	}
	return errors.New("please log in first: threads login <email> <password>")
}

// confirmOnStdin asks a blocking yes/no question on the terminal
func confirmOnStdin(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func showFeed(ctx context.Context, a *app.App) error {
	posts, err := a.Posts.Load(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}
	for i := range posts {
		printPost(&posts[i])
	}
	return nil
}

func showProfile(ctx context.Context, a *app.App, userID uint) error {
	profile, err := a.Profiles.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			fmt.Printf("User %d not found.\n", userID)
			return nil
		}
		return err
	}
	fmt.Printf("@%s (#%d): %d posts, %d comments\n",
		profile.Username, profile.ID, profile.PostsCount, profile.CommentsCount)
	for i := range profile.Posts {
		printPost(&profile.Posts[i])
	}
	return nil
}

func whoami(a *app.App) error {
	user := a.Session.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("@%s (#%d) <%s>\n", user.Username, user.ID, user.Email)
	return nil
}

func printPost(p *models.Post) {
	fmt.Printf("#%-4d @%-15s %s %s\n", p.ID, p.Owner.Username, likeMarker(p.IsLikedByUser, p.LikesCount), p.Timestamp.Format("2006-01-02 15:04"))
	fmt.Printf("      %s\n", p.Text)
	for i := range p.Replies {
		r := &p.Replies[i]
		fmt.Printf("      └ #%-4d @%-12s %s %s\n", r.ID, r.Owner.Username, likeMarker(r.IsLikedByUser, r.LikesCount), r.Text)
	}
}

func likeMarker(liked bool, count int) string {
	if liked {
		return fmt.Sprintf("[♥ %d]", count)
	}
	return fmt.Sprintf("[♡ %d]", count)
}

// parseID reads the positional argument at index as an entity ID
func parseID(args []string, index int) (uint, error) {
	if len(args) <= index {
		return 0, errors.New("missing id argument")
	}
	id, err := strconv.ParseUint(args[index], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[index])
	}
	return uint(id), nil
}

// optionalImage opens the image file at the given argument position, if any.
// The cleanup func closes the file and is safe to call unconditionally.
func optionalImage(args []string, index int) (*api.Upload, func(), error) {
	if len(args) <= index || args[index] == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(args[index])
	if err != nil {
		return nil, func() {}, err
	}
	return &api.Upload{Filename: filepath.Base(args[index]), Reader: f}, func() { f.Close() }, nil
}
