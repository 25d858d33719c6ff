// tailorchat is a small interactive shell over the backend API, standing in
// for the browser client during development.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tailor-backend/client"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "backend base URL")
	flag.Parse()

	api := client.New(*baseURL)
	conv := client.NewConversation(api)
	ctx := context.Background()

	fmt.Println("tailorchat commands: upload <path>, tailor <job description>, jobs <role>, export, quit")
	fmt.Println("anything else is sent to the assistant as chat")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return
		case "upload":
			upload(ctx, api, conv, strings.TrimSpace(rest))
		case "tailor":
			seen := len(conv.Messages())
			conv.TailorToJob(ctx, "cli", rest)
			printNew(conv, seen)
		case "jobs":
			searchJobs(ctx, api, strings.TrimSpace(rest))
		case "export":
			export(ctx, api, conv)
		default:
			seen := len(conv.Messages())
			conv.Submit(ctx, line)
			printNew(conv, seen)
		}
	}
}

func upload(ctx context.Context, api *client.Client, conv *client.Conversation, path string) {
	if path == "" {
		fmt.Println("usage: upload <path>")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer f.Close()

	uploaded, _, err := api.UploadAndParse(ctx, filepath.Base(path), f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	conv.AttachDocument(uploaded.DocID)
	fmt.Printf("uploaded %s (%d chars extracted), doc %s\n", uploaded.FileName, uploaded.TextChars, uploaded.DocID)
	if uploaded.TextPreview != "" {
		fmt.Println("---")
		fmt.Println(uploaded.TextPreview)
		fmt.Println("---")
	}
}

func searchJobs(ctx context.Context, api *client.Client, role string) {
	if role == "" {
		fmt.Println("usage: jobs <role>")
		return
	}
	result, err := api.SearchJobs(ctx, client.JobSearchRequest{Role: role, Limit: 10})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(result.Results) == 0 {
		fmt.Println("no listings found")
		return
	}
	for i, job := range result.Results {
		fmt.Printf("%2d. %s at %s", i+1, job.JobTitle, job.Company)
		if job.Location != "" {
			fmt.Printf(" (%s)", job.Location)
		}
		if job.Salary != "" {
			fmt.Printf(" - %s", job.Salary)
		}
		fmt.Println()
		if job.ApplyURL != "" {
			fmt.Println("    ", job.ApplyURL)
		}
	}
}

func export(ctx context.Context, api *client.Client, conv *client.Conversation) {
	docID := conv.DocumentRef()
	if docID == "" {
		fmt.Println("upload a resume first")
		return
	}
	result, err := api.Export(ctx, docID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("exported to %s\ndownload (%ds): %s\n", result.ExportKey, result.ExpiresInSeconds, result.DownloadURL)
}

func printNew(conv *client.Conversation, seen int) {
	msgs := conv.Messages()
	for _, m := range msgs[seen:] {
		if m.Role == client.RoleAssistant {
			fmt.Println("assistant:", m.Content)
		}
	}
	if conv.AwaitingConfirmation() {
		fmt.Println("(suggestions:", strings.Join(conv.SuggestedAffirmations(), ", ")+")")
	}
}
