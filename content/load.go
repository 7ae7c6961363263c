package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// LoadOptions controls which posts Load returns.
type LoadOptions struct {
	IncludeDrafts bool
}

// Load reads every *.md file under dir. A post's slug is its file name
// without extension, or the directory name for <slug>/index.md. Errors from
// individual files are collected and returned together.
func Load(dir string, opts LoadOptions) ([]Post, error) {
	return LoadFS(os.DirFS(dir), opts)
}

// LoadFS is Load over an fs.FS rooted at the content directory.
func LoadFS(fsys fs.FS, opts LoadOptions) ([]Post, error) {
	var (
		posts []Post
		errs  []error
		seen  = make(map[string]string)
	)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		post, err := Parse(p, data)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		post.Slug = SlugFromPath(p)
		if post.Slug == "" {
			errs = append(errs, fmt.Errorf("%s: cannot derive slug", p))
			return nil
		}
		if prev, ok := seen[post.Slug]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate slug %q (also %s)", p, post.Slug, prev))
			return nil
		}
		seen[post.Slug] = p
		if post.Draft && !opts.IncludeDrafts {
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	SortPosts(posts)
	return posts, nil
}

// SlugFromPath derives a slug from a content-relative path.
func SlugFromPath(p string) string {
	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))
	if strings.EqualFold(name, "index") {
		dir := path.Dir(p)
		if dir == "." {
			return ""
		}
		name = path.Base(dir)
	}
	return Slugify(name)
}

// Slugify converts a title or file name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SortPosts orders posts newest first, then by slug.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Tags returns the sorted set of tags across posts.
func Tags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterByTag returns the posts that carry tag.
func FilterByTag(posts []Post, tag string) []Post {
	var out []Post
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Related returns posts sharing at least one tag with current, excluding it.
func Related(current Post, posts []Post, limit int) []Post {
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range current.Tags {
			if p.HasTag(t) {
				related = append(related, p)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

// Adjacent returns the newer and older neighbours of the post at slug in a
// newest-first slice. Missing neighbours are nil.
func Adjacent(posts []Post, slug string) (newer, older *Post) {
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i > 0 {
			newer = &posts[i-1]
		}
		if i+1 < len(posts) {
			older = &posts[i+1]
		}
		return newer, older
	}
	return nil, nil
}
