package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leetfolio/internal"
	"leetfolio/internal/capture"
	"leetfolio/internal/config"
	"leetfolio/internal/leetcode"
	"leetfolio/internal/pipeline"
	"leetfolio/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	must(err)
	defer func() { _ = logger.Sync() }()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	set := storage.NewProblemSet(db, logger)
	orch := pipeline.NewOrchestrator(leetcode.NewClient(cfg), time.Duration(cfg.FallbackSettleMs)*time.Millisecond, logger)
	handler := capture.NewHandler(cfg, orch, set, logger)

	cmd := os.Args[1]
	switch cmd {
	case "capture":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		pageURL := fs.String("url", "", "submission page url")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*pageURL) == "" {
			must(fmt.Errorf("--url is required"))
		}
		resp := handler.Handle(context.Background(), capture.Request{Kind: capture.KindCapture, PageURL: *pageURL})
		if !resp.Success {
			must(fmt.Errorf("%s", resp.Error))
		}
		blob, _ := json.MarshalIndent(resp.Data, "", "  ")
		fmt.Println(string(blob))
	case "list":
		problems, err := set.ListProblems()
		must(err)
		for _, p := range problems {
			fmt.Printf("%d. %s [%s] id=%s link=%s\n", p.Order, p.Name, p.Language, p.ID, p.SubmissionLink)
		}
		fmt.Printf("%d problems\n", len(problems))
	case "info:set":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		title := fs.String("title", "", "problem-set title")
		submittedBy := fs.String("submitted-by", "", "author name")
		_ = fs.Parse(os.Args[2:])
		must(set.SetInfo(internal.SetInfo{Title: *title, SubmittedBy: *submittedBy}))
		fmt.Println("info updated")
	case "info:get":
		info, err := set.GetInfo()
		must(err)
		fmt.Printf("title=%q submittedBy=%q\n", info.Title, info.SubmittedBy)
	case "problem:update":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "problem id")
		name := fs.String("name", "", "new name")
		code := fs.String("code", "", "new code")
		language := fs.String("language", "", "new language")
		link := fs.String("link", "", "new submission link")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		patch := storage.ProblemPatch{}
		if *name != "" {
			patch.Name = name
		}
		if *code != "" {
			patch.Code = code
		}
		if *language != "" {
			patch.Language = language
		}
		if *link != "" {
			patch.SubmissionLink = link
		}
		updated, err := set.UpdateProblem(*id, patch)
		must(err)
		fmt.Printf("updated %s (%s)\n", updated.ID, updated.Name)
	case "problem:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "problem id")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		must(set.DeleteProblem(*id))
		fmt.Println("deleted")
	case "reorder":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		ids := fs.String("ids", "", "comma-separated problem ids in new order")
		_ = fs.Parse(os.Args[2:])
		ordered := splitIDs(*ids)
		must(set.Reorder(ordered))
		fmt.Printf("reordered %d problems\n", len(ordered))
	case "clear":
		must(set.ClearAll())
		fmt.Println("cleared")
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.ServeAddr, "listen address")
		_ = fs.Parse(os.Args[2:])
		must(serve(*addr, handler, logger))
	default:
		usage()
		os.Exit(1)
	}
}

func serve(addr string, handler *capture.Handler, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/message", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req capture.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := handler.Handle(r.Context(), req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	logger.Info("serving", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func usage() {
	fmt.Println("usage: leetfolio <command>")
	fmt.Println("commands:")
	fmt.Println("  capture --url=https://leetcode.com/submissions/detail/123456789/")
	fmt.Println("  list")
	fmt.Println("  info:set --title=... --submitted-by=...")
	fmt.Println("  info:get")
	fmt.Println("  problem:update --id=... [--name=...] [--code=...] [--language=...] [--link=...]")
	fmt.Println("  problem:delete --id=...")
	fmt.Println("  reorder --ids=id1,id2,id3")
	fmt.Println("  clear")
	fmt.Println("  serve [--addr=:8642]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
