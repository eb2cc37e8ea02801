package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/interface8/Prompt-8/internal/db"
	"github.com/interface8/Prompt-8/internal/logger"
	"github.com/interface8/Prompt-8/internal/repos"
	"github.com/interface8/Prompt-8/internal/requestdata"
	"github.com/interface8/Prompt-8/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A second pooled connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	prompts   repos.PromptRepo
	carts     repos.CartRepo
	items     repos.CartItemRepo
	buys      repos.PurchaseRepo
	likes     repos.LikeRepo
	auth      AuthService
	promptSvc PromptService
	cart      CartService
	purchase  PurchaseService
	like      LikeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testDB(t)
	log := testLogger()
	users := repos.NewUserRepo(gdb, log)
	tokens := repos.NewUserTokenRepo(gdb, log)
	prompts := repos.NewPromptRepo(gdb, log)
	promptTypes := repos.NewPromptTypeRepo(gdb, log)
	parameters := repos.NewParameterRepo(gdb, log)
	modelRecs := repos.NewModelRecRepo(gdb, log)
	carts := repos.NewCartRepo(gdb, log)
	items := repos.NewCartItemRepo(gdb, log)
	buys := repos.NewPurchaseRepo(gdb, log)
	likes := repos.NewLikeRepo(gdb, log)
	return &testEnv{
		db:        gdb,
		log:       log,
		users:     users,
		tokens:    tokens,
		prompts:   prompts,
		carts:     carts,
		items:     items,
		buys:      buys,
		likes:     likes,
		auth:      NewAuthService(gdb, log, users, tokens, "test-secret", time.Hour, 24*time.Hour),
		promptSvc: NewPromptService(gdb, log, users, prompts, promptTypes, parameters, modelRecs, nil),
		cart:      NewCartService(gdb, log, users, prompts, carts, items, buys),
		purchase:  NewPurchaseService(gdb, log, users, prompts, carts, items, buys),
		like:      NewLikeService(gdb, log, users, prompts, likes),
	}
}

func (e *testEnv) seedUser(t *testing.T, role string) *types.User {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@example.com",
		Password: "hashed",
		Name:     "Test User",
		Role:     role,
	}
	if _, err := e.users.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedPrompt(t *testing.T, owner *types.User, price float64) *types.Prompt {
	t.Helper()
	prompt := &types.Prompt{
		ID:           uuid.New(),
		UserID:       owner.ID,
		Title:        "Test Prompt",
		Slug:         "test-prompt-" + uuid.New().String()[:8],
		Description:  "A prompt",
		Template:     "Hello {{name}}",
		Domain:       "Development",
		Category:     "General",
		SkillLevel:   types.SkillBeginner,
		Price:        price,
		Currency:     "USD",
		Tags:         []byte("[]"),
		IsSellable:   price > 0,
	}
	if _, err := e.prompts.Create(context.Background(), nil, []*types.Prompt{prompt}); err != nil {
		t.Fatalf("seed prompt: %v", err)
	}
	return prompt
}

// blockInserts makes every insert into the given table fail with a
// non-constraint error, standing in for a persistence-layer outage.
func (e *testEnv) blockInserts(t *testing.T, table string) {
	t.Helper()
	ddl := `CREATE TRIGGER block_` + table + `_insert BEFORE INSERT ON "` + table + `" BEGIN SELECT RAISE(ABORT, 'write blocked'); END`
	if err := e.db.Exec(ddl).Error; err != nil {
		t.Fatalf("create trigger on %s: %v", table, err)
	}
}

func ctxFor(user *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: user.ID})
}
