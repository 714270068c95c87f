package commands

import (
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Title    string   `short:"t" required:"" help:"Title of the item"`
	Category string   `help:"Category of a post"`
	Tags     []string `help:"Tags, comma separated"`
	Summary  string   `help:"Short summary (at most 140 characters)"`
	Slug     string   `help:"Explicit slug; derived from the title when empty"`
	Page     bool     `help:"Create a page instead of a post"`
	Draft    bool     `help:"Mark the item as draft"`
	Body     string   `help:"Markdown body; read from --body-file when empty"`
	BodyFile string   `name:"body-file" type:"existingfile" help:"File holding the markdown body"`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	body := n.Body
	if body == "" && n.BodyFile != "" {
		// #nosec G304 -- path is supplied by the user on the command line
		data, err := os.ReadFile(n.BodyFile)
		if err != nil {
			return errors.FileSystemError("cannot read body file").WithCause(err).WithContext("path", n.BodyFile).Build()
		}
		body = string(data)
	}

	item := &content.Item{
		Title:    n.Title,
		Category: strings.TrimSpace(n.Category),
		Tags:     n.Tags,
		Summary:  n.Summary,
		Slug:     n.Slug,
		IsDraft:  n.Draft,
		Contents: body,
		Kind:     content.KindPost,
	}
	if n.Page {
		item.Kind = content.KindPage
	}

	saved, err := content.NewSaver(content.NewCache()).WithLogger(g.logger()).Save(cfg.Project.Root, item)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Created %s %s (%s)\n", saved.Kind, saved.FilePath, saved.URL())
	return nil
}
