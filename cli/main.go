package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-storage-gateway/client"
	"github.com/tnqbao/gau-storage-gateway/config"
	infraPkg "github.com/tnqbao/gau-storage-gateway/infra"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	server := flag.String("server", "http://localhost:8080", "gateway base URL")
	flag.Parse()

	cfg := config.NewConfig()
	logger := infraPkg.InitLoggerClient(cfg.EnvConfig)
	defer logger.Shutdown(context.Background())

	args := flag.Args()
	if len(args) < 1 {
		usage()
	}

	cl := client.NewClient(*server)
	ctx := context.Background()

	switch args[0] {
	case "upload":
		if len(args) < 2 {
			usage()
		}
		runUpload(ctx, cl, args[1:])
	case "download":
		if len(args) < 2 {
			usage()
		}
		out := ""
		if len(args) > 2 {
			out = args[2]
		}
		runDownload(ctx, cl, args[1], out)
	case "list":
		runList(ctx, cl)
	default:
		usage()
	}
}

func runUpload(ctx context.Context, cl *client.Client, paths []string) {
	items := make([]client.UploadItem, 0, len(paths))
	files := make([]*os.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			log.Fatalf("Failed to stat %s: %v", path, err)
		}
		files = append(files, f)
		items = append(items, client.UploadItem{
			FileName: filepath.Base(path),
			Payload:  f,
			Size:     info.Size(),
		})
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	results := cl.UploadAll(ctx, items, func(name string, fraction float64) {
		fmt.Printf("\r%s: %3.0f%%", name, fraction*100)
	})
	fmt.Println()

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("FAILED  %s: %v\n", result.FileName, result.Err)
			continue
		}
		fmt.Printf("OK      %s -> %s\n", result.FileName, result.BlobName)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runDownload(ctx context.Context, cl *client.Client, blobName, out string) {
	if out == "" {
		out = client.DisplayName(blobName)
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", out, err)
	}
	defer f.Close()

	if err := cl.DownloadFile(ctx, blobName, f); err != nil {
		log.Fatalf("Download failed: %v", err)
	}
	fmt.Printf("Downloaded %s to %s\n", blobName, out)
}

func runList(ctx context.Context, cl *client.Client) {
	blobs, err := cl.ListBlobs(ctx)
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}
	for _, b := range blobs {
		fmt.Printf("%-50s %12d  %s\n", b.Name, b.Size, b.ContentType)
	}
}

func usage() {
	fmt.Println("Usage: gau-storage-cli [-server URL] upload <files...> | download <blobName> [out] | list")
	os.Exit(2)
}
