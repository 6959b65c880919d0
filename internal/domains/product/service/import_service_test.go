package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/repository"
	"catalog-backend/internal/domains/product/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake product repository ---

type fakeProductRepo struct {
	products map[int64]*model.Product
	nextID   int64

	// SKUs whose writes fail, to exercise row-error accounting.
	failSKUs map[string]bool

	chunkCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*model.Product),
		failSKUs: make(map[string]bool),
	}
}

func (r *fakeProductRepo) GetAll(_ context.Context) ([]model.Product, error) {
	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshot := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, *r.products[id])
	}
	return snapshot, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter *model.ListFilter) ([]model.Product, int64, error) {
	all, _ := r.GetAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	return r.insert(p)
}

func (r *fakeProductRepo) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	return r.update(p)
}

func (r *fakeProductRepo) SetArchived(_ context.Context, id int64, archived bool) error {
	p, ok := r.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	p.Archived = archived
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) WithinChunk(_ context.Context, fn func(ops repository.ChunkOps) error) error {
	r.chunkCalls++
	return fn(&fakeChunkOps{repo: r})
}

func (r *fakeProductRepo) insert(p *model.Product) (*model.Product, error) {
	if r.failSKUs[p.SKU] {
		return nil, fmt.Errorf("constraint violation on %s", p.SKU)
	}
	r.nextID++
	copied := *p
	copied.ID = r.nextID
	r.products[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeProductRepo) update(p *model.Product) (*model.Product, error) {
	if r.failSKUs[p.SKU] {
		return nil, fmt.Errorf("constraint violation on %s", p.SKU)
	}
	if _, ok := r.products[p.ID]; !ok {
		return nil, model.ErrProductNotFound
	}
	copied := *p
	r.products[p.ID] = &copied
	result := copied
	return &result, nil
}

type fakeChunkOps struct {
	repo *fakeProductRepo
}

func (o *fakeChunkOps) Insert(_ context.Context, p *model.Product) (*model.Product, error) {
	return o.repo.insert(p)
}

func (o *fakeChunkOps) Update(_ context.Context, p *model.Product) (*model.Product, error) {
	return o.repo.update(p)
}

// --- Fake import job repository ---

type fakeJobRepo struct {
	jobs map[string]*model.ImportJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*model.ImportJob)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *model.ImportJob) error {
	job.Status = model.JobStatusPending
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*model.ImportJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, model.ErrImportJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) List(_ context.Context, limit int) ([]model.ImportJob, error) {
	jobs := make([]model.ImportJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func (r *fakeJobRepo) MarkProcessing(_ context.Context, id string) error {
	job, ok := r.jobs[id]
	if !ok || job.Status != model.JobStatusPending {
		return model.ErrImportJobNotFound
	}
	job.Status = model.JobStatusProcessing
	return nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, id string, result *model.ImportResult) error {
	job, ok := r.jobs[id]
	if !ok {
		return model.ErrImportJobNotFound
	}
	job.Status = model.JobStatusCompleted
	job.Result = result
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, id string, message string) error {
	job, ok := r.jobs[id]
	if !ok {
		return model.ErrImportJobNotFound
	}
	job.Status = model.JobStatusFailed
	job.Error = message
	return nil
}

func (r *fakeJobRepo) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, job := range r.jobs {
		terminal := job.Status == model.JobStatusCompleted || job.Status == model.JobStatusFailed
		if terminal && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(r.jobs, id)
			purged++
		}
	}
	return purged, nil
}

// --- Fake category service ---

type fakeCategoryService struct {
	byName  map[string]int64
	nextID  int64
	created int
}

func newFakeCategoryService() *fakeCategoryService {
	return &fakeCategoryService{byName: make(map[string]int64)}
}

func (s *fakeCategoryService) Create(context.Context, category.CreateRequest) (*category.Category, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeCategoryService) GetByID(context.Context, int64) (*category.Category, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeCategoryService) GetAll(context.Context, *category.Filter) ([]category.Category, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *fakeCategoryService) Update(context.Context, int64, category.UpdateRequest) (*category.Category, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeCategoryService) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

func (s *fakeCategoryService) GetOrCreate(_ context.Context, name string) (int64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := s.byName[key]; ok {
		return id, nil
	}
	s.nextID++
	s.byName[key] = s.nextID
	s.created++
	return s.nextID, nil
}

func (s *fakeCategoryService) FindIDByName(_ context.Context, name string) (int64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := s.byName[key]; ok {
		return id, nil
	}
	return 0, category.ErrCategoryNotFound
}

// --- Fake queue ---

type fakeQueue struct {
	tasks       []*asynq.Task
	failEnqueue bool
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.failEnqueue {
		return nil, errors.New("broker unavailable")
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

// --- Harness ---

type importFixture struct {
	repo       *fakeProductRepo
	jobs       *fakeJobRepo
	categories *fakeCategoryService
	queue      *fakeQueue
	svc        service.ImportService
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	f := &importFixture{
		repo:       newFakeProductRepo(),
		jobs:       newFakeJobRepo(),
		categories: newFakeCategoryService(),
		queue:      &fakeQueue{},
	}
	f.svc = service.NewImportService(f.repo, f.jobs, f.categories, f.queue, config.ImportConfig{
		MaxRows:          1000,
		DefaultBatchSize: 2,
		JobRetentionDays: 30,
		UploadDir:        t.TempDir(),
	})
	return f
}

// --- Tests ---

func TestImportFile_InsertsNewProducts(t *testing.T) {
	f := newImportFixture(t)

	csv := "Ürün Adı,SKU,Marka,Kategori,Ağırlık\n" +
		"Duşakabin 90x90,DSK-90,Hüppe,Banyo,12.5\n" +
		"Lavabo Bataryası,LVB-01,VitrA,Banyo,1.8\n"

	result := f.svc.ImportFile(context.Background(), "urunler.csv", strings.NewReader(csv), model.DefaultImportOptions())

	require.True(t, result.Success)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.InsertedCount)
	assert.Zero(t, result.UpdatedCount)
	assert.Zero(t, result.ErrorCount)
	assert.Equal(t, 1, result.BatchCount)

	// Both rows named the same category; it is created once and shared.
	assert.Equal(t, 1, f.categories.created)

	all, _ := f.repo.GetAll(context.Background())
	require.Len(t, all, 2)
	assert.Equal(t, "Duşakabin 90x90", all[0].Name)
	require.NotNil(t, all[0].CategoryID)
	assert.Equal(t, *all[0].CategoryID, *all[1].CategoryID)
}

func TestImportFile_SecondRunMergesWithoutClobbering(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	first := "Ürün Adı,SKU,Ağırlık,Açıklama\nDuşakabin,DSK-90,12.5,<p>detaylı</p>\n"
	result := f.svc.ImportFile(ctx, "ilk.csv", strings.NewReader(first), model.DefaultImportOptions())
	require.True(t, result.Success)
	require.Equal(t, 1, result.InsertedCount)

	// Same product by SKU; weight cell empty, brand newly supplied.
	second := "Ürün Adı,SKU,Marka,Ağırlık\nDuşakabin,DSK-90,Hüppe,\n"
	result = f.svc.ImportFile(ctx, "ikinci.csv", strings.NewReader(second), model.DefaultImportOptions())

	require.True(t, result.Success)
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Zero(t, result.InsertedCount)

	all, _ := f.repo.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Hüppe", all[0].Brand)
	assert.True(t, decimal.RequireFromString("12.5").Equal(all[0].Weight), "empty weight cell must not clobber")
	assert.Equal(t, "<p>detaylı</p>", all[0].Description)
}

func TestImportFile_DuplicateRowsInOneFileUpdate(t *testing.T) {
	f := newImportFixture(t)

	csv := "Ürün Adı,SKU,Marka\nAyna,AYN-1,\nAyna,AYN-1,VitrA\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	require.True(t, result.Success)
	assert.Equal(t, 1, result.InsertedCount)
	assert.Equal(t, 1, result.UpdatedCount)

	all, _ := f.repo.GetAll(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "VitrA", all[0].Brand)
}

func TestImportFile_UpdateExistingDisabledSkips(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	seed := "Ürün Adı,SKU,Marka\nAyna,AYN-1,Eski\n"
	require.True(t, f.svc.ImportFile(ctx, "seed.csv", strings.NewReader(seed), model.DefaultImportOptions()).Success)

	opts := model.DefaultImportOptions()
	opts.UpdateExisting = false
	again := "Ürün Adı,SKU,Marka\nAyna,AYN-1,Yeni\n"
	result := f.svc.ImportFile(ctx, "again.csv", strings.NewReader(again), opts)

	assert.False(t, result.Success, "a run that wrote nothing is not a success")
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Zero(t, result.UpdatedCount)

	all, _ := f.repo.GetAll(ctx)
	assert.Equal(t, "Eski", all[0].Brand)
}

func TestImportFile_RowErrorsAreAccounted(t *testing.T) {
	f := newImportFixture(t)
	f.repo.failSKUs["BOZUK-1"] = true

	csv := "Ürün Adı,SKU\nSağlam,OK-1\nBozuk,BOZUK-1\nSağlam İki,OK-2\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	require.True(t, result.Success, "row errors do not fail the run")
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.InsertedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "BOZUK-1", result.Errors[0].SKU)
}

func TestImportFile_SuccessRequiresWrites(t *testing.T) {
	f := newImportFixture(t)
	f.repo.failSKUs["BOZUK-1"] = true

	// Every row fails persistence: errors accounted, nothing written.
	csv := "Ürün Adı,SKU\nBozuk,BOZUK-1\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	assert.False(t, result.Success)
	assert.Zero(t, result.InsertedCount)
	assert.Zero(t, result.UpdatedCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Empty(t, result.ErrorMessage, "row errors are not file-level failures")
}

func TestImportFile_StopOnError(t *testing.T) {
	f := newImportFixture(t)
	f.repo.failSKUs["BOZUK-1"] = true

	opts := model.DefaultImportOptions()
	opts.StopOnError = true

	csv := "Ürün Adı,SKU\nSağlam,OK-1\nBozuk,BOZUK-1\nUlaşılmaz,OK-2\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), opts)

	assert.Equal(t, 2, result.TotalProcessed, "run stops at the failing row")
	assert.Equal(t, 1, result.InsertedCount)
	assert.Equal(t, 1, result.ErrorCount)

	all, _ := f.repo.GetAll(context.Background())
	assert.Len(t, all, 1)
}

func TestImportFile_MissingNamesCountSkipped(t *testing.T) {
	f := newImportFixture(t)

	csv := "Ürün Adı,SKU\nAyna,AYN-1\n,ISIMSIZ-1\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	require.True(t, result.Success)
	assert.Equal(t, 1, result.TotalProcessed, "name-less rows are not processed")
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 1, result.InsertedCount)
}

func TestImportFile_ChunkingHonoursBatchSize(t *testing.T) {
	f := newImportFixture(t) // DefaultBatchSize: 2

	var sb strings.Builder
	sb.WriteString("Ürün Adı,SKU\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "Ürün %d,SKU-%d\n", i, i)
	}

	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(sb.String()), model.DefaultImportOptions())

	require.True(t, result.Success)
	assert.Equal(t, 5, result.InsertedCount)
	assert.Equal(t, 3, result.BatchCount)
	assert.Equal(t, 3, f.repo.chunkCalls)
}

func TestImportFile_CancelledContextStopsAtChunkBoundary(t *testing.T) {
	f := newImportFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	csv := "Ürün Adı,SKU\nAyna,AYN-1\n"
	result := f.svc.ImportFile(ctx, "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "cancelled")
	assert.Zero(t, result.InsertedCount)
}

func TestImportFile_FileLevelFailures(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	result := f.svc.ImportFile(ctx, "u.pdf", strings.NewReader("x"), model.DefaultImportOptions())
	assert.False(t, result.Success)

	result = f.svc.ImportFile(ctx, "u.csv", strings.NewReader("Ürün Adı,SKU\n"), model.DefaultImportOptions())
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "no data rows")
}

func TestImportFile_RowLimit(t *testing.T) {
	f := &importFixture{
		repo:       newFakeProductRepo(),
		jobs:       newFakeJobRepo(),
		categories: newFakeCategoryService(),
		queue:      &fakeQueue{},
	}
	f.svc = service.NewImportService(f.repo, f.jobs, f.categories, f.queue, config.ImportConfig{
		MaxRows:          2,
		DefaultBatchSize: 100,
		UploadDir:        t.TempDir(),
	})

	csv := "Ürün Adı,SKU\nA,1\nB,2\nC,3\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), model.DefaultImportOptions())

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "row limit")
}

func TestImportFile_CreateMissingCategoriesDisabled(t *testing.T) {
	f := newImportFixture(t)

	opts := model.DefaultImportOptions()
	opts.CreateMissingCategories = false

	csv := "Ürün Adı,SKU,Kategori\nAyna,AYN-1,Bilinmeyen Kategori\n"
	result := f.svc.ImportFile(context.Background(), "u.csv", strings.NewReader(csv), opts)

	require.True(t, result.Success)
	assert.Zero(t, f.categories.created)

	all, _ := f.repo.GetAll(context.Background())
	require.Len(t, all, 1)
	assert.Nil(t, all[0].CategoryID, "unknown category leaves the product uncategorized")
	assert.Equal(t, "Bilinmeyen Kategori", all[0].CategoryName)
}

func TestEnqueueAndRunJob(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	csv := "Ürün Adı,SKU\nAyna,AYN-1\n"
	job, err := f.svc.EnqueueImport(ctx, "urunler.csv", strings.NewReader(csv), model.DefaultImportOptions())
	require.NoError(t, err)
	require.NotNil(t, job)

	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Len(t, f.queue.tasks, 1)
	assert.FileExists(t, job.FilePath)

	require.NoError(t, f.svc.RunJob(ctx, job.ID))

	stored, err := f.svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.Equal(t, 1, stored.Result.InsertedCount)

	_, err = os.Stat(job.FilePath)
	assert.True(t, os.IsNotExist(err), "staged file is removed after the run")
}

func TestEnqueueImport_QueueFailureCleansUp(t *testing.T) {
	f := newImportFixture(t)
	f.queue.failEnqueue = true

	csv := "Ürün Adı,SKU\nAyna,AYN-1\n"
	_, err := f.svc.EnqueueImport(context.Background(), "urunler.csv", strings.NewReader(csv), model.DefaultImportOptions())
	require.Error(t, err)

	// The pending job row is failed and the staged upload is removed.
	require.Len(t, f.jobs.jobs, 1)
	for _, job := range f.jobs.jobs {
		assert.Equal(t, model.JobStatusFailed, job.Status)
		_, statErr := os.Stat(job.FilePath)
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestRunJob_NoWritesStillCompletes(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	seed := "Ürün Adı,SKU\nAyna,AYN-1\n"
	require.True(t, f.svc.ImportFile(ctx, "seed.csv", strings.NewReader(seed), model.DefaultImportOptions()).Success)

	opts := model.DefaultImportOptions()
	opts.UpdateExisting = false
	job, err := f.svc.EnqueueImport(ctx, "again.csv", strings.NewReader(seed), opts)
	require.NoError(t, err)
	require.NoError(t, f.svc.RunJob(ctx, job.ID))

	stored, err := f.svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.False(t, stored.Result.Success)
	assert.Equal(t, 1, stored.Result.SkippedCount)
}

func TestRunJob_MissingJobIsNotRetried(t *testing.T) {
	f := newImportFixture(t)
	assert.NoError(t, f.svc.RunJob(context.Background(), "yok-boyle-bir-is"))
}
