package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cv-match/internal/config"
	"cv-match/internal/models"
	"cv-match/internal/repositories"
)

// Bulk-imports a directory of CV files (.pdf/.docx/.doc) into the database.
// Usage: go run scripts/ingest_cvs.go <directory>
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <directory>", os.Args[0])
	}
	dir := os.Args[1]

	log.Println("🚀 Starting CV ingestion...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	cvRepo := repositories.NewCVRepository(db)

	if err := os.MkdirAll(cfg.Storage.UploadPath, 0755); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Failed to read directory: %v", err)
	}

	imported := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".pdf" && ext != ".docx" && ext != ".doc" {
			log.Printf("⚠️  Skipping %s: unsupported extension\n", entry.Name())
			continue
		}

		id := uuid.New()
		filename := fmt.Sprintf("cv_%s%s", id.String(), ext)
		destPath := filepath.Join(cfg.Storage.UploadPath, filename)

		if err := copyFile(filepath.Join(dir, entry.Name()), destPath); err != nil {
			log.Printf("❌ Failed to copy %s: %v\n", entry.Name(), err)
			continue
		}

		title := strings.TrimSuffix(entry.Name(), ext)
		cv := models.CV{
			ID:               id,
			Title:            title,
			Filename:         filename,
			OriginalFileName: entry.Name(),
			FilePath:         destPath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := cvRepo.Create(&cv); err != nil {
			log.Printf("❌ Failed to create record for %s: %v\n", entry.Name(), err)
			os.Remove(destPath)
			continue
		}

		log.Printf("✅ Imported %s as %s\n", entry.Name(), cv.ID)
		imported++
	}

	log.Printf("🎉 Ingestion completed: %d CVs imported\n", imported)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Close()
}
