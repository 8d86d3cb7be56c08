package canonical

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/months"
	"github.com/canonpl-dev/canonpl/internal/source"
)

// Options names the top-level sections in the two source documents.
type Options struct {
	IncomeSection   string
	COGSSection     string
	PayrollPrefix   string
	PayrollName     string
	OperatingPrefix string
	OperatingName   string
}

// DefaultOptions returns the section names and code prefixes the
// bundled source documents use.
func DefaultOptions() Options {
	return Options{
		IncomeSection:   "Income",
		COGSSection:     "COGS",
		PayrollPrefix:   "500",
		PayrollName:     "Payroll",
		OperatingPrefix: "599",
		OperatingName:   "Direct Operating Costs",
	}
}

// Service builds and caches the canonical P&L. The tree is assembled
// on first access and memoized for the life of the Service; the source
// documents are static, so there is no invalidation. Construction is
// deterministic, and nothing mutates the tree after it is built.
type Service struct {
	flat   *source.FlatIndex
	nested *source.NestedDocument
	opts   Options

	once sync.Once
	pl   *model.CanonicalPL
}

// NewService creates a canonical P&L service over the two sources.
// Zero-valued Options fields fall back to defaults.
func NewService(flat *source.FlatIndex, nested *source.NestedDocument, opts Options) *Service {
	def := DefaultOptions()
	if opts.IncomeSection == "" {
		opts.IncomeSection = def.IncomeSection
	}
	if opts.COGSSection == "" {
		opts.COGSSection = def.COGSSection
	}
	if opts.PayrollPrefix == "" {
		opts.PayrollPrefix = def.PayrollPrefix
	}
	if opts.PayrollName == "" {
		opts.PayrollName = def.PayrollName
	}
	if opts.OperatingPrefix == "" {
		opts.OperatingPrefix = def.OperatingPrefix
	}
	if opts.OperatingName == "" {
		opts.OperatingName = def.OperatingName
	}
	return &Service{flat: flat, nested: nested, opts: opts}
}

// CanonicalPL returns the assembled canonical P&L, building it on the
// first call and the cached instance on every call after.
func (s *Service) CanonicalPL() *model.CanonicalPL {
	s.once.Do(s.build)
	return s.pl
}

func (s *Service) build() {
	b := &builder{flat: s.flat}

	incomeNode, _ := s.nested.Section(s.opts.IncomeSection)
	cogsNode, _ := s.nested.Section(s.opts.COGSSection)

	pl := &model.CanonicalPL{
		Income:    b.buildNestedRoot(incomeNode, "income", s.opts.IncomeSection),
		COGS:      b.buildNestedRoot(cogsNode, "cogs", s.opts.COGSSection),
		Payroll:   b.buildFromFlat(s.opts.PayrollPrefix, "payroll", s.opts.PayrollName),
		Operating: b.buildFromFlat(s.opts.OperatingPrefix, "operating", s.opts.OperatingName),
		General:   zeroSection("general", "General & Admin"),
		Labor:     zeroSection("labor", "Labor"),
	}

	totals := model.Totals{
		TotalIncome:    monthPair(),
		TotalCOGS:      monthPair(),
		TotalLabor:     monthPair(),
		TotalPrimeCost: monthPair(),
		GrossProfit:    monthPair(),
		NetIncome:      monthPair(),
	}
	for _, label := range []string{months.Sep, months.Oct} {
		income := pl.Income.Month(label).Value
		cogs := pl.COGS.Month(label).Value
		totals.TotalIncome[label] = income
		totals.TotalCOGS[label] = cogs
		totals.GrossProfit[label] = income.Sub(cogs)
	}
	pl.Totals = totals

	s.pl = pl
}

func monthPair() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		months.Sep: decimal.Zero,
		months.Oct: decimal.Zero,
	}
}

// AccountValue returns the value for an account and short month label,
// searching every section tree. Missing accounts or months read as
// zero; this accessor never fails.
func (s *Service) AccountValue(name, month string) decimal.Decimal {
	return s.monthField(name, month).Value
}

// AccountPercent returns the percent-of-revenue for an account and
// short month label, with the same degradation as AccountValue.
func (s *Service) AccountPercent(name, month string) decimal.Decimal {
	return s.monthField(name, month).PercentOfRevenue
}

func (s *Service) monthField(name, month string) model.MonthlyValue {
	acct := FindAccount(s.CanonicalPL().Sections(), name)
	if acct == nil {
		return model.MonthlyValue{}
	}
	return acct.Months[month]
}
