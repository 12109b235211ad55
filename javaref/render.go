package javaref

import (
	"context"
	"regexp"
)

// Link is a rendered reference. URL is empty when the reference could not
// be resolved, in which case Warnings says why.
type Link struct {
	Title    string
	URL      string
	Target   string
	Warnings []string
}

func (l Link) Linked() bool {
	return l.URL != ""
}

var explicitTitle = regexp.MustCompile(`(?s)^(.+?)\s*<(.*?)>$`)

// SplitExplicitTitle splits "title <target>" into its parts. Text without
// an explicit title is returned as both title and target.
func SplitExplicitTitle(text string) (hasTitle bool, title, target string) {
	if m := explicitTitle.FindStringSubmatch(text); m != nil {
		return true, m[1], m[2]
	}
	return false, text, text
}

// Render resolves the text of a reference written in doc, a document in
// docdir. Unresolvable references are returned unlinked with a warning;
// the error is only set when the classpath cannot be read.
func (s *Session) Render(ctx context.Context, doc, docdir, text string) (Link, error) {
	hasTitle, title, ref := SplitExplicitTitle(text)
	link := Link{Title: title, Target: ref}

	target, err := s.Resolve(ctx, doc, ref)
	var url string
	if err == nil {
		url, err = s.URL(ctx, target)
	}
	if err != nil {
		if !IsRecoverable(err) {
			return Link{}, err
		}
		log.Debugf("%s: %s", doc, err)
		link.Warnings = append(link.Warnings, err.Error())
		return link, nil
	}

	if !hasTitle {
		link.Title = s.Options().Titles.Title(target)
	}
	link.Target = target.String()
	link.URL = Relativize(url, s.Options().SrcDir, docdir)
	return link, nil
}
