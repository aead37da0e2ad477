package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/database"
	"github.com/Rana718/retailgen/internal/database/common"
	"github.com/Rana718/retailgen/internal/loader"
	"github.com/Rana718/retailgen/internal/types"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	customerIDLength = 10
	orderIDPrefix    = "ORD-"
	idRetries        = 16
)

// RNG stream selectors. Each batch of each stage gets its own PCG stream so
// the data does not depend on how batches are spread over workers.
const (
	stageCustomers uint64 = iota + 1
	stageOrders
	stageTransactions
)

const (
	allocCustomers uint64 = 1<<62 | 1
	allocOrders    uint64 = 1<<62 | 2
)

// Report summarises a run. It is returned even when the run fails, with the
// unfinished tables flagged partial.
type Report struct {
	Order         []string
	Tables        map[string]loader.TableStats
	BaseCustomers int
	Duplicates    InjectStats
	StartDate     time.Time // resolved order date window
	EndDate       time.Time
	Started       time.Time
	Finished      time.Time
}

func (r *Report) DuplicateCustomers() int {
	return r.Duplicates.Exact + r.Duplicates.Fuzzy
}

// Seeder runs the generation pipeline against a connected sink. Stages follow
// the foreign key order of the target schema and each stage is fully loaded
// before the next one starts.
type Seeder struct {
	config       *config.Config
	sink         database.Sink
	log          *zap.Logger
	graph        *DependencyGraph
	loader       *loader.BatchLoader
	customers    *CustomerGenerator
	injector     *DuplicateInjector
	orders       *OrderGenerator
	transactions *TransactionGenerator

	customerPool CustomerPool
	orderPool    OrderPool
	start, end   time.Time
	links        []DuplicateLink
	report       Report
}

func NewSeeder(cfg *config.Config, sink database.Sink, log *zap.Logger) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	model, err := cfg.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to build distribution model: %w", err)
	}
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	customers := NewCustomerGenerator(model, NewFaker(model, end))
	policy := DuplicatePolicy{
		Rate:           cfg.Duplicates.Rate,
		ExactShare:     cfg.Duplicates.ExactContactShare,
		FuzzyTypoShare: cfg.Duplicates.FuzzyTypoShare,
		TypoRate:       cfg.Duplicates.TypoRate,
	}

	return &Seeder{
		config:       cfg,
		sink:         sink,
		log:          log,
		graph:        NewDependencyGraph(),
		loader:       loader.New(sink, cfg.Loader.ChunkSize, log),
		customers:    customers,
		injector:     NewDuplicateInjector(customers, policy),
		orders:       NewOrderGenerator(model, start, end),
		transactions: NewTransactionGenerator(model),
		start:        start,
		end:          end,
	}, nil
}

// Run creates the schema, optionally empties the tables, then generates and
// loads every table.
func (s *Seeder) Run(ctx context.Context, truncate bool) (*Report, error) {
	s.report = Report{StartDate: s.start, EndDate: s.end, Started: time.Now()}
	color.Cyan("🌱 Starting data generation (seed %d)...", s.config.Generation.Seed)

	for _, table := range database.Schema(s.config.Generation.EmitLinks) {
		if err := common.ValidateIdentifiers(table.Name, table.ColumnNames()); err != nil {
			return s.finish(), err
		}
		s.graph.AddTable(table)
	}
	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return s.finish(), fmt.Errorf("failed to build insertion order: %w", err)
	}
	s.report.Order = order

	color.Green("📊 Found %d tables", len(order))
	color.Cyan("📋 Insertion order: %s", strings.Join(order, " → "))
	fmt.Println()

	if err := s.sink.CreateSchema(ctx, s.graph.Definitions()); err != nil {
		return s.finish(), fmt.Errorf("failed to create schema: %w", err)
	}
	if truncate {
		color.Yellow("🗑️  Truncating tables...")
		if err := s.sink.Truncate(ctx, s.graph.TruncationOrder()); err != nil {
			return s.finish(), fmt.Errorf("failed to truncate tables: %w", err)
		}
		color.Green("✅ Tables truncated")
	}

	for i, def := range s.graph.Definitions() {
		table := loader.Table{Name: def.Name, Columns: def.ColumnNames()}
		began := time.Now()
		color.Cyan("  📝 Generating %s...", table.Name)

		if err := s.runStage(ctx, table); err != nil {
			for _, name := range order[i:] {
				s.loader.MarkPartial(name)
			}
			return s.finish(), fmt.Errorf("failed to generate %s: %w", table.Name, err)
		}

		stats := s.loader.Stats()[table.Name]
		s.log.Info("stage complete",
			zap.String("table", table.Name),
			zap.Int64("rows", stats.Rows),
			zap.Int("batches", stats.Batches),
			zap.Duration("elapsed", time.Since(began).Truncate(time.Millisecond)),
		)
		color.Green("  ✅ %s: %d rows", table.Name, stats.Rows)
	}

	color.Green("\n✅ Data generation completed successfully!")
	return s.finish(), nil
}

func (s *Seeder) finish() *Report {
	s.report.Tables = s.loader.Stats()
	s.report.Finished = time.Now()
	report := s.report
	return &report
}

func (s *Seeder) runStage(ctx context.Context, table loader.Table) error {
	switch table.Name {
	case types.TableCustomers:
		return s.generateCustomers(ctx, table)
	case types.TableDuplicates:
		return s.loadLinks(ctx, table)
	case types.TableOrders:
		return s.generateOrders(ctx, table)
	case types.TableTransactions:
		return s.generateTransactions(ctx, table)
	default:
		return fmt.Errorf("no generator for table %s", table.Name)
	}
}

// stream returns the RNG for one batch of one stage.
func (s *Seeder) stream(stage uint64, batch int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(s.config.Generation.Seed), stage<<40|uint64(batch)))
}

func (s *Seeder) allocator(selector uint64, prefix string) *IDAllocator {
	r := rand.New(rand.NewPCG(uint64(s.config.Generation.Seed), selector))
	return NewIDAllocator(r, prefix, customerIDLength, idRetries)
}

type customerBatch struct {
	base    []Customer
	derived []Derived
	stats   InjectStats
}

func (s *Seeder) generateCustomers(ctx context.Context, table loader.Table) error {
	total := s.config.Generation.Customers
	size, _, _ := s.config.Batches()
	policy := s.injector.Policy()
	ids := s.allocator(allocCustomers, "")
	keepLinks := s.config.Generation.EmitLinks

	gen := func(i int) customerBatch {
		r := s.stream(stageCustomers, i)
		lo, hi := i*size, min((i+1)*size, total)
		base := s.customers.GenerateBatch(r, hi-lo)
		derived, stats := s.injector.Inject(r, base, policy.QuotaBetween(lo, hi))
		return customerBatch{base: base, derived: derived, stats: stats}
	}

	commit := func(_ int, b customerBatch) error {
		rows := make([][]any, 0, len(b.base)+len(b.derived))
		for i := range b.base {
			id, err := ids.Next()
			if err != nil {
				return err
			}
			b.base[i].CustomerID = id
			s.customerPool.Add(id, b.base[i].Profile.Country)
			rows = append(rows, b.base[i].Row())
		}
		for i := range b.derived {
			d := &b.derived[i]
			id, err := ids.Next()
			if err != nil {
				return err
			}
			d.Customer.CustomerID = id
			s.customerPool.Add(id, d.Customer.Profile.Country)
			rows = append(rows, d.Customer.Row())
			if keepLinks {
				s.links = append(s.links, DuplicateLink{
					PrimaryID:   b.base[d.Source].CustomerID,
					DuplicateID: id,
					Kind:        d.Kind,
				})
			}
		}

		if err := s.loader.Load(ctx, table, rows); err != nil {
			return err
		}
		s.report.BaseCustomers += len(b.base)
		s.report.Duplicates.add(b.stats)
		return nil
	}

	return produce(ctx, s.config.Generation.Workers, batches(total, size), gen, commit)
}

// loadLinks writes the duplicate pairs collected by the customer stage.
func (s *Seeder) loadLinks(ctx context.Context, table loader.Table) error {
	size, _, _ := s.config.Batches()
	for lo := 0; lo < len(s.links); lo += size {
		chunk := s.links[lo:min(lo+size, len(s.links))]
		rows := make([][]any, len(chunk))
		for i := range chunk {
			rows[i] = chunk[i].Row()
		}
		if err := s.loader.Load(ctx, table, rows); err != nil {
			return err
		}
	}
	s.links = nil
	return nil
}

func (s *Seeder) generateOrders(ctx context.Context, table loader.Table) error {
	total := s.config.Generation.Orders
	_, size, _ := s.config.Batches()
	ids := s.allocator(allocOrders, orderIDPrefix)

	gen := func(i int) []Order {
		lo, hi := i*size, min((i+1)*size, total)
		return s.orders.GenerateBatch(s.stream(stageOrders, i), hi-lo, &s.customerPool)
	}

	commit := func(_ int, batch []Order) error {
		rows := make([][]any, len(batch))
		for i := range batch {
			id, err := ids.Next()
			if err != nil {
				return err
			}
			batch[i].OrderID = id
			s.orderPool.Add(OrderRef{ID: id, Country: batch[i].Country})
			rows[i] = batch[i].Row()
		}
		return s.loader.Load(ctx, table, rows)
	}

	return produce(ctx, s.config.Generation.Workers, batches(total, size), gen, commit)
}

func (s *Seeder) generateTransactions(ctx context.Context, table loader.Table) error {
	total := s.orderPool.Len()
	_, _, size := s.config.Batches()
	var nextID int64 = 1

	gen := func(i int) []Transaction {
		r := s.stream(stageTransactions, i)
		var items []Transaction
		for _, ref := range s.orderPool.Slice(i*size, min((i+1)*size, total)) {
			items = append(items, s.transactions.GenerateForOrder(r, ref)...)
		}
		return items
	}

	commit := func(_ int, items []Transaction) error {
		rows := make([][]any, len(items))
		for i := range items {
			items[i].TransactionID = nextID
			nextID++
			rows[i] = items[i].Row()
		}
		return s.loader.Load(ctx, table, rows)
	}

	return produce(ctx, s.config.Generation.Workers, batches(total, size), gen, commit)
}

func batches(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// produce generates batches [0, n) on up to workers goroutines and commits
// them strictly in batch order. Generation runs a window of workers batches
// at a time, which bounds the rows held in memory.
func produce[T any](ctx context.Context, workers, n int, gen func(int) T, commit func(int, T) error) error {
	workers = max(workers, 1)
	for lo := 0; lo < n; lo += workers {
		hi := min(lo+workers, n)
		out := make([]T, hi-lo)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i-lo] = gen(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := lo; i < hi; i++ {
			if err := commit(i, out[i-lo]); err != nil {
				return err
			}
			var zero T
			out[i-lo] = zero
		}
	}
	return nil
}
