package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content
var contentFS embed.FS

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

// RenderMarkdown converts trusted, embedded Markdown to HTML. Raw HTML in
// the source is dropped by goldmark's default renderer.
func RenderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

type Feature struct {
	Icon string
	Body template.HTML
}

type Content struct {
	Hero     template.HTML
	Features []Feature
}

var features = []struct {
	file string
	icon string
}{
	{"fraud-protection.md", "shield"},
	{"true-ownership.md", "ticket"},
	{"transparent-pricing.md", "trending-up"},
}

func LoadContent() (*Content, error) {
	src, err := contentFS.ReadFile("content/hero.md")
	if err != nil {
		return nil, err
	}

	hero, err := RenderMarkdown(src)
	if err != nil {
		return nil, err
	}

	c := &Content{Hero: hero}
	for _, f := range features {
		src, err := contentFS.ReadFile("content/features/" + f.file)
		if err != nil {
			return nil, err
		}

		body, err := RenderMarkdown(src)
		if err != nil {
			return nil, err
		}
		c.Features = append(c.Features, Feature{Icon: f.icon, Body: body})
	}

	return c, nil
}
