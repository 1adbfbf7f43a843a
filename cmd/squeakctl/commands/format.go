package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/squeaknode/squeakweb/internal/models"
)

func short(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}

func msat(v int64) string {
	return humanize.Comma(v) + " msat"
}

func ago(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return humanize.Time(time.UnixMilli(ms))
}

func author(sq models.Squeak) string {
	if sq.Author != nil && sq.Author.ProfileName != "" {
		return sq.Author.ProfileName
	}
	return short(sq.AuthorPubkey)
}

func printSqueaks(w io.Writer, items []models.Squeak) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no squeaks")
		return
	}
	for _, sq := range items {
		printSqueakLine(w, sq)
	}
}

func printSqueakLine(w io.Writer, sq models.Squeak) {
	content := sq.ContentStr
	switch {
	case sq.IsResqueak:
		content = "resqueaked " + short(sq.ResqueakedHash)
	case !sq.IsUnlocked:
		content = "(locked)"
	}
	content = strings.ReplaceAll(content, "\n", " ")
	liked := " "
	if sq.IsLiked() {
		liked = "*"
	}
	fmt.Fprintf(w, "%s %-12s  %-16s  %-14s  %s\n", liked, short(sq.SqueakHash), author(sq), ago(sq.SqueakTime*1000), content)
}
