package service

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeTxRunner satisfies repository.TxRunner. The in-memory fakes below
// ignore the tx handle, so passing nil through is fine.
type fakeTxRunner struct{}

func (f *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

func loanWithCode(code string) *model.Loan {
	return &model.Loan{
		LoanID:          code,
		Amount:          10000,
		InterestPercent: 2,
		Status:          model.LoanActive,
	}
}

type fakeLoanRepo struct {
	loans  map[uuid.UUID]*model.Loan
	byCode map[string]*model.Loan
	// failCreates makes the next N Create calls report a duplicate key,
	// simulating a loan-code race lost to a concurrent billing.
	failCreates int
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{
		loans:  make(map[uuid.UUID]*model.Loan),
		byCode: make(map[string]*model.Loan),
	}
}

func (f *fakeLoanRepo) Create(tx *gorm.DB, loan *model.Loan) error {
	if f.failCreates > 0 {
		f.failCreates--
		return gorm.ErrDuplicatedKey
	}
	if _, exists := f.byCode[loan.LoanID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	stored := *loan
	f.loans[loan.ID] = &stored
	f.byCode[loan.LoanID] = &stored
	return nil
}

func (f *fakeLoanRepo) FindByIdentifier(identifier string) (*model.Loan, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		if loan, ok := f.loans[id]; ok {
			copied := *loan
			return &copied, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	if loan, ok := f.byCode[identifier]; ok {
		copied := *loan
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Loan, error) {
	loan, ok := f.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *loan
	return &copied, nil
}

func (f *fakeLoanRepo) FindByStatus(status model.LoanStatus) ([]model.Loan, error) {
	var out []model.Loan
	for _, loan := range f.loans {
		if loan.Status == status {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) FindByCustomer(customerID uuid.UUID) ([]model.Loan, error) {
	var out []model.Loan
	for _, loan := range f.loans {
		if loan.CustomerID == customerID {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) CountActiveByCustomer(customerID uuid.UUID) (int64, error) {
	var count int64
	for _, loan := range f.loans {
		if loan.CustomerID == customerID && loan.Status == model.LoanActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeLoanRepo) FindActiveByCustomer(customerID uuid.UUID) (*model.Loan, error) {
	for _, loan := range f.loans {
		if loan.CustomerID == customerID && loan.Status == model.LoanActive {
			copied := *loan
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanRepo) MaxLoanCode(tx *gorm.DB, prefix string) (string, error) {
	var codes []string
	for code := range f.byCode {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return "", nil
	}
	sort.Strings(codes)
	return codes[len(codes)-1], nil
}

func (f *fakeLoanRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.LoanStatus, updatedBy string) error {
	loan, ok := f.loans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	loan.Status = status
	loan.UpdatedBy = updatedBy
	return nil
}

func (f *fakeLoanRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	loan, ok := f.loans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byCode, loan.LoanID)
	delete(f.loans, id)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	byPhone   map[string]*model.Customer
	history   []model.CustomerEditHistory
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[uuid.UUID]*model.Customer),
		byPhone:   make(map[string]*model.Customer),
	}
}

func (f *fakeCustomerRepo) Create(tx *gorm.DB, customer *model.Customer) error {
	if _, exists := f.byPhone[customer.Phone]; exists {
		return gorm.ErrDuplicatedKey
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	stored := *customer
	f.customers[customer.ID] = &stored
	f.byPhone[customer.Phone] = &stored
	return nil
}

func (f *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *customer
	return &copied, nil
}

func (f *fakeCustomerRepo) FindByPhone(phone string) (*model.Customer, error) {
	customer, ok := f.byPhone[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *customer
	return &copied, nil
}

func (f *fakeCustomerRepo) Search(query string, offset, limit int) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, customer := range f.customers {
		if query == "" || strings.Contains(customer.Name, query) || strings.Contains(customer.Phone, query) {
			out = append(out, *customer)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepo) Update(customer *model.Customer) error {
	existing, ok := f.customers[customer.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if other, taken := f.byPhone[customer.Phone]; taken && other.ID != customer.ID {
		return gorm.ErrDuplicatedKey
	}
	delete(f.byPhone, existing.Phone)
	stored := *customer
	f.customers[customer.ID] = &stored
	f.byPhone[customer.Phone] = &stored
	return nil
}

func (f *fakeCustomerRepo) Delete(id uuid.UUID, deletedBy string) error {
	customer, ok := f.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byPhone, customer.Phone)
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) RecordEdit(history *model.CustomerEditHistory) error {
	f.history = append(f.history, *history)
	return nil
}

func (f *fakeCustomerRepo) HistoryByCustomer(customerID uuid.UUID) ([]model.CustomerEditHistory, error) {
	var out []model.CustomerEditHistory
	for _, h := range f.history {
		if h.CustomerID == customerID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items  map[uuid.UUID]*model.Item
	byCode map[string]*model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:  make(map[uuid.UUID]*model.Item),
		byCode: make(map[string]*model.Item),
	}
}

func (f *fakeItemRepo) CreateBatch(tx *gorm.DB, items []model.Item) error {
	for i := range items {
		if _, exists := f.byCode[items[i].Code]; exists {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		stored := items[i]
		f.items[stored.ID] = &stored
		f.byCode[stored.Code] = &stored
	}
	return nil
}

func (f *fakeItemRepo) Create(item *model.Item) error {
	if _, exists := f.byCode[item.Code]; exists {
		return gorm.ErrDuplicatedKey
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	f.items[item.ID] = &stored
	f.byCode[item.Code] = &stored
	return nil
}

func (f *fakeItemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) FindByCode(code string) (*model.Item, error) {
	item, ok := f.byCode[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) FindMaster() ([]model.Item, error) {
	var out []model.Item
	for _, item := range f.items {
		if item.ItemType == model.ItemMaster {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) FindByLoan(loanID uuid.UUID) ([]model.Item, error) {
	var out []model.Item
	for _, item := range f.items {
		if item.LoanID != nil && *item.LoanID == loanID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(item *model.Item) error {
	existing, ok := f.items[item.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if other, taken := f.byCode[item.Code]; taken && other.ID != item.ID {
		return gorm.ErrDuplicatedKey
	}
	delete(f.byCode, existing.Code)
	stored := *item
	f.items[item.ID] = &stored
	f.byCode[item.Code] = &stored
	return nil
}

func (f *fakeItemRepo) Delete(id uuid.UUID) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byCode, item.Code)
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) AssignLoan(tx *gorm.DB, ids []uuid.UUID, loanID uuid.UUID) error {
	for _, id := range ids {
		item, ok := f.items[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		ref := loanID
		item.LoanID = &ref
		item.Status = model.ItemPledged
	}
	return nil
}

func (f *fakeItemRepo) UpdateStatusByLoan(tx *gorm.DB, loanID uuid.UUID, status model.ItemStatus) error {
	for _, item := range f.items {
		if item.LoanID != nil && *item.LoanID == loanID {
			item.Status = status
		}
	}
	return nil
}

func (f *fakeItemRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	for id, item := range f.items {
		if item.LoanID != nil && *item.LoanID == loanID {
			delete(f.byCode, item.Code)
			delete(f.items, id)
		}
	}
	return nil
}

type fakeRepaymentRepo struct {
	byLoan map[uuid.UUID]*model.Repayment
}

func newFakeRepaymentRepo() *fakeRepaymentRepo {
	return &fakeRepaymentRepo{byLoan: make(map[uuid.UUID]*model.Repayment)}
}

func (f *fakeRepaymentRepo) Create(tx *gorm.DB, repayment *model.Repayment) error {
	if _, exists := f.byLoan[repayment.LoanRef]; exists {
		return gorm.ErrDuplicatedKey
	}
	if repayment.ID == uuid.Nil {
		repayment.ID = uuid.New()
	}
	stored := *repayment
	f.byLoan[repayment.LoanRef] = &stored
	return nil
}

func (f *fakeRepaymentRepo) FindByLoan(loanID uuid.UUID) (*model.Repayment, error) {
	repayment, ok := f.byLoan[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *repayment
	return &copied, nil
}

func (f *fakeRepaymentRepo) FindByLoans(loanIDs []uuid.UUID) ([]model.Repayment, error) {
	var out []model.Repayment
	for _, id := range loanIDs {
		if repayment, ok := f.byLoan[id]; ok {
			out = append(out, *repayment)
		}
	}
	return out, nil
}

func (f *fakeRepaymentRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	delete(f.byLoan, loanID)
	return nil
}

type fakeLedgerRepo struct {
	entries []model.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (f *fakeLedgerRepo) Record(tx *gorm.DB, entry *model.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) FindByLoan(loanID uuid.UUID) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, entry := range f.entries {
		if entry.LoanRef == loanID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) Find(from, to time.Time, loanID *uuid.UUID) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, entry := range f.entries {
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		if loanID != nil && entry.LoanRef != *loanID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeLedgerRepo) Summary(from, to time.Time) (*repository.LedgerSummary, error) {
	var summary repository.LedgerSummary
	for _, entry := range f.entries {
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		switch {
		case entry.Type == model.EntryBilling && entry.Mode == model.ModeCash:
			summary.BillingCash += entry.Amount
		case entry.Type == model.EntryBilling && entry.Mode == model.ModeOnline:
			summary.BillingOnline += entry.Amount
		case entry.Type == model.EntryRepayment && entry.Mode == model.ModeCash:
			summary.RepaymentCash += entry.Amount
		case entry.Type == model.EntryRepayment && entry.Mode == model.ModeOnline:
			summary.RepaymentOnline += entry.Amount
		}
	}
	return &summary, nil
}

func (f *fakeLedgerRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	kept := f.entries[:0]
	for _, entry := range f.entries {
		if entry.LoanRef != loanID {
			kept = append(kept, entry)
		}
	}
	f.entries = kept
	return nil
}

type fakeBillingRepo struct {
	byLoan map[uuid.UUID]*model.BillingRecord
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{byLoan: make(map[uuid.UUID]*model.BillingRecord)}
}

func (f *fakeBillingRepo) Create(tx *gorm.DB, record *model.BillingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	stored := *record
	f.byLoan[record.LoanRef] = &stored
	return nil
}

func (f *fakeBillingRepo) FindByLoan(loanID uuid.UUID) (*model.BillingRecord, error) {
	record, ok := f.byLoan[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeBillingRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	delete(f.byLoan, loanID)
	return nil
}
