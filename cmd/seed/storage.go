package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/freshmart/retail-ops/backend-go/internal/storage"
)

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "endpoint",
			Usage:    "Object storage endpoint (host:port)",
			EnvVars:  []string{"STORAGE_ENDPOINT"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "access-key",
			Usage:    "Object storage access key",
			EnvVars:  []string{"STORAGE_ACCESS_KEY"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "secret-key",
			Usage:    "Object storage secret key",
			EnvVars:  []string{"STORAGE_SECRET_KEY"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "Bucket holding dataset snapshots",
			Value:   "retail-ops-datasets",
			EnvVars: []string{"STORAGE_BUCKET"},
		},
		&cli.BoolFlag{
			Name:    "use-ssl",
			Usage:   "Connect to object storage over TLS",
			Value:   true,
			EnvVars: []string{"STORAGE_USE_SSL"},
		},
		&cli.StringFlag{
			Name:    "key",
			Usage:   "Object key of the dataset snapshot",
			Value:   "snapshots/pos_transactions.json",
			EnvVars: []string{"STORAGE_OBJECT_KEY"},
		},
	}
}

func newStorageClient(c *cli.Context) (*storage.MinioClient, error) {
	return storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Bucket:    c.String("bucket"),
		UseSSL:    c.Bool("use-ssl"),
	})
}

func runFetch(c *cli.Context) error {
	client, err := newStorageClient(c)
	if err != nil {
		return err
	}

	key := c.String("key")
	out := c.String("out")

	start := time.Now()
	if err := client.DownloadObject(c.Context, key, out); err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("downloaded snapshot is unreadable: %w", err)
	}

	log.Printf("Fetched %s (%d bytes) to %s in %v", key, info.Size(), out, time.Since(start))
	return nil
}

func runPublish(c *cli.Context) error {
	client, err := newStorageClient(c)
	if err != nil {
		return err
	}

	file := c.String("file")
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", file, err)
	}

	key := c.String("key")
	if key == "" {
		key = "snapshots/" + filepath.Base(file)
	}

	start := time.Now()
	if err := client.UploadObject(c.Context, key, data); err != nil {
		return err
	}

	log.Printf("Published %s (%d bytes) as %s in %v", file, len(data), key, time.Since(start))
	return nil
}
