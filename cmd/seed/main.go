package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/storage"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
)

type seedOptions struct {
	envFile      string
	count        int
	approveCount int
	rejectCount  int
	randomSeed   int64
}

var (
	sampleNames      = []string{"고궁", "한옥마을 식당", "전주 왱이집", "가족회관", "베테랑", "삼백집", "진미집", "현대옥"}
	sampleCategories = []string{"한식", "분식", "카페", "중식", "일식"}
	sampleLocations  = []string{"전주 완산구", "전주 덕진구", "서울 종로구", "부산 해운대구", "대구 중구"}
	samplePrices     = []string{"", "1만원 이하", "1-2만원", "2-3만원"}
	sampleMenus      = []string{"비빔밥", "콩나물국밥", "칼국수", "떡볶이", "만두", "막걸리", "물냉면", "모주"}
	sampleReviews    = []string{"현지인 추천", "줄 서서 먹을 가치가 있음", "가성비 최고", "", "분위기가 좋아요"}
	sampleSubmitters = []string{"김민수", "이서연", "박지훈", "", "최유진"}
)

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatalf("Seed に失敗しました: %v", err)
	}
}

// run owns every resource it opens so deferred cleanup runs before main exits.
func run(opts seedOptions) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
		}
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stores, err := storage.Open(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("ストア接続に失敗しました: %w", err)
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Printf("WARN: ストア切断時にエラー: %v", err)
		}
	}()

	service := application.NewSubmissionService(application.SubmissionServiceConfig{
		Submissions:        stores.Submissions,
		Restaurants:        stores.Restaurants,
		PriceRangeFallback: cfg.PriceRangeFallback,
	})

	rng := rand.New(rand.NewSource(opts.randomSeed))
	result, err := seed(ctx, service, generateSubmissions(rng, opts.count), opts.approveCount, opts.rejectCount)
	if err != nil {
		return err
	}

	log.Printf("Seed 完了: submissions=%d approved=%d rejected=%d (store=%s)",
		result.created, result.approved, result.rejected, cfg.StoreDriver)
	return nil
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env", "", "読み込む .env ファイル (省略時は環境変数のみ)")
	flag.IntVar(&opts.count, "submissions", 20, "生成する投稿数")
	flag.IntVar(&opts.approveCount, "approve", 5, "承認して店舗化する投稿数")
	flag.IntVar(&opts.rejectCount, "reject", 3, "却下する投稿数")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")
	flag.Parse()

	if opts.count <= 0 {
		log.Fatal("submissions は 1 以上を指定してください")
	}
	if opts.approveCount < 0 {
		opts.approveCount = 0
	}
	if opts.rejectCount < 0 {
		opts.rejectCount = 0
	}
	if opts.approveCount+opts.rejectCount > opts.count {
		log.Fatal("approve と reject の合計は submissions 以下にしてください")
	}
	return opts
}

type seedResult struct {
	created  int
	approved int
	rejected int
}

// seed creates every command, then approves the first approveCount and
// rejects the next rejectCount.
func seed(ctx context.Context, service application.SubmissionService, cmds []application.CreateSubmissionCommand, approveCount, rejectCount int) (seedResult, error) {
	var result seedResult
	ids := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		s, err := service.Create(ctx, cmd)
		if err != nil {
			return result, fmt.Errorf("create submission: %w", err)
		}
		ids = append(ids, s.ID)
		result.created++
	}

	for i, id := range ids {
		switch {
		case i < approveCount:
			if _, err := service.Approve(ctx, id); err != nil {
				return result, fmt.Errorf("approve %s: %w", id, err)
			}
			result.approved++
		case i < approveCount+rejectCount:
			if _, err := service.Reject(ctx, id); err != nil {
				return result, fmt.Errorf("reject %s: %w", id, err)
			}
			result.rejected++
		}
	}
	return result, nil
}

func generateSubmissions(rng *rand.Rand, count int) []application.CreateSubmissionCommand {
	cmds := make([]application.CreateSubmissionCommand, 0, count)
	for i := 0; i < count; i++ {
		submitter := pick(rng, sampleSubmitters)
		email := ""
		if submitter != "" {
			email = fmt.Sprintf("user%03d@example.com", i+1)
		}
		cmds = append(cmds, application.CreateSubmissionCommand{
			RestaurantName:  pick(rng, sampleNames),
			Category:        pick(rng, sampleCategories),
			Location:        pick(rng, sampleLocations),
			PriceRange:      pick(rng, samplePrices),
			RecommendedMenu: pickMenu(rng),
			Review:          pick(rng, sampleReviews),
			SubmitterName:   submitter,
			SubmitterEmail:  email,
		})
	}
	return cmds
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func pickMenu(rng *rand.Rand) []string {
	n := rng.Intn(4)
	seen := make(map[string]struct{}, n)
	menu := make([]string, 0, n)
	for len(menu) < n {
		item := strings.TrimSpace(pick(rng, sampleMenus))
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		menu = append(menu, item)
	}
	return menu
}
