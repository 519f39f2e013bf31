package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/pkg/oss"
)

var (
	dryRun     = flag.Bool("dry-run", true, "Dry run mode, don't actually delete anything")
	expireDays = flag.Int("expire-days", 0, "Days to keep scans (0 = use config value)")
	batchSize  = flag.Int("batch-size", 500, "Max scans to process in one run")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting scan cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keepDays := *expireDays
	if keepDays <= 0 {
		keepDays = cfg.Scan.ExpireDays
	}
	if keepDays <= 0 {
		keepDays = 30
	}

	// 连接数据库
	db, err := connectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// OSS 不可用时仅删除数据库记录
	ossClient, err := oss.NewClient(&cfg.OSS)
	if err != nil {
		log.Printf("⚠️  OSS client unavailable, images will be left behind: %v", err)
		ossClient = nil
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	log.Printf("\n📷 Cleaning scans older than %d days (before %s)...",
		keepDays, cutoff.Format("2006-01-02"))

	var scans []model.Scan
	err = db.Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(*batchSize).
		Find(&scans).Error
	if err != nil {
		log.Fatalf("Failed to query expired scans: %v", err)
	}

	log.Printf("Found %d expired scans", len(scans))

	deleted := 0
	imagesDeleted := 0
	for _, scan := range scans {
		log.Printf("  - scan %d (user %d, %s old)",
			scan.ID, scan.UserID,
			time.Since(scan.CreatedAt).Round(time.Hour))

		if *dryRun {
			deleted++
			continue
		}

		if ossClient != nil {
			objectKey := ossClient.ExtractObjectKey(scan.ImageURL)
			if objectKey != "" {
				if err := ossClient.Delete(objectKey); err != nil {
					log.Printf("    ❌ Failed to delete image: %v", err)
					continue
				}
				imagesDeleted++
			}
		}

		if err := db.Delete(&model.Scan{}, scan.ID).Error; err != nil {
			log.Printf("    ❌ Failed to delete record: %v", err)
			continue
		}
		deleted++
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Expired scans found: %d", len(scans))
	log.Printf("Records deleted: %d", deleted)
	log.Printf("Images deleted: %d", imagesDeleted)
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - Nothing was actually deleted")
		log.Println("   Run with -dry-run=false to actually delete")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}

// connectDB 连接数据库
func connectDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
