package main

import (
	"blogdemo/internal/index"
	"bytes"
	"context"
	"github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloPost = `---
title: "Hello"
slug: "hello"
published_at: "2026-02-18T12:00:00Z"
author:
  name: "Demo"
  email: "demo@example.com"
category:
  name: "Rust"
  slug: "rust"
tags:
  - name: "Dioxus"
    slug: "dioxus"
featured_image:
  file_url: "/assets/logo.png"
---
# Hello

World.
`

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append(args, "--log-format", "json", "--config", writeConfig(t))
	err := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// writeConfig keeps tests independent of any blogdemo.yaml in the
// working directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "blogdemo.yaml")
	if err := os.WriteFile(p, []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheck(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"hello.md": helloPost})
	out, _, err := runCLI(t, "check", "--source", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.HasPrefix(out, "ok: 1 posts, 1 categories, 1 tags, 3 routes") {
		t.Fatalf("out = %q", out)
	}
}

func TestRoutes(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"hello.md": helloPost})
	out, _, err := runCLI(t, "routes", "--source", dir)
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	want := "/categories/rust\n/posts/hello\n/tags/dioxus\n"
	if out != want {
		t.Fatalf("out = %q", out)
	}
}

func TestExportToFile(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"hello.md": helloPost})
	target := filepath.Join(t.TempDir(), "out", "content.json")
	if _, _, err := runCLI(t, "export", "--source", dir, "--out", target, "--indent=false"); err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Posts) != 1 || doc.Posts[0].Slug != "hello" || len(doc.Routes) != 3 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestIndex(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"hello.md": helloPost})
	db := filepath.Join(t.TempDir(), "index.db")
	out, _, err := runCLI(t, "index", "--source", dir, "--db", db)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.HasPrefix(out, "indexed 1 posts") {
		t.Fatalf("out = %q", out)
	}

	st, err := index.Open(index.OpenOptions{Path: db})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if p, err := st.GetPost("hello"); err != nil || p.ID != 1 {
		t.Fatalf("stored post = %+v, %v", p, err)
	}
}

func TestInvalidContentIsValidationError(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.md": helloPost,
		"b.md": helloPost,
	})
	_, stderr, err := runCLI(t, "check", "--source", dir)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("want validation category, got %v", err)
	}
	if !strings.Contains(stderr, "duplicate_slug") || !strings.Contains(stderr, "b.md") {
		t.Fatalf("stderr should describe the failure: %s", stderr)
	}
}

func TestMissingSourceIsValidationError(t *testing.T) {
	_, _, err := runCLI(t, "check", "--source", filepath.Join(t.TempDir(), "nope"))
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("want validation category, got %v", err)
	}
}

func TestBadConfigIsValidationError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("log:\n  format: xml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code := run(context.Background(), []string{"check", "--config", p}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "log.format") {
		t.Fatalf("stderr should name the rejected setting: %s", stderr.String())
	}
}

func TestUnknownCommandIsCommandError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"nope"}, &stdout, &stderr)
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("want command category, got %v", err)
	}
	if run(context.Background(), []string{"nope"}, &stdout, &stderr) != 1 {
		t.Fatal("unknown command should exit 1")
	}
}
