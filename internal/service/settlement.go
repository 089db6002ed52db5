package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"

	"github.com/shopspring/decimal"
)

// Fixed settlement rates. Not configurable per lot.
var (
	auctioneerCommissionRate = decimal.RequireFromString("0.05")
	administrativeFeeRate    = decimal.RequireFromString("0.02")
)

type SettlementService struct {
	lotRepo     repo.Lot
	bidRepo     repo.Bid
	accountRepo repo.Account
	now         func() time.Time
}

func NewSettlementService(repos *repo.Repositories) *SettlementService {
	return &SettlementService{
		lotRepo:     repos.Lot,
		bidRepo:     repos.Bid,
		accountRepo: repos.Account,
		now:         time.Now,
	}
}

// FinalizeLot closes an active lot: picks the winning bid, moves the status
// to finalized and returns the settlement summary. The transition is one-way
// and guarded, a second call gets ErrLotAlreadyFinalized. A lot with no bids
// cannot be finalized and stays active.
func (s *SettlementService) FinalizeLot(ctx context.Context, lotId string, requesterId string) (*entity.SettlementSummary, error) {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrUnauthorized
	}

	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	if lot.Status != common.LotActive {
		return nil, ErrLotAlreadyFinalized
	}

	if _, err := s.bidRepo.GetWinningBid(ctx, lotId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotHasNoBids
		}

		return nil, err
	}

	finalizedAt := s.now()
	if err := s.lotRepo.FinalizeLot(ctx, lotId, finalizedAt); err != nil {
		// Lost the race with another finalize call.
		if errors.Is(err, repo_errors.ErrLotNotActive) {
			return nil, ErrLotAlreadyFinalized
		}

		return nil, err
	}

	// The winner is re-read after the status flip: a bid committed between the
	// pre-check above and the flip must appear in the summary, and no further
	// bids can land once the lot has left the active state.
	winning, err := s.bidRepo.GetWinningBid(ctx, lotId)
	if err != nil {
		return nil, err
	}

	return buildSettlementSummary(lot, winning, finalizedAt), nil
}

// GetSettlement recomputes the summary of an already finalized lot without
// touching any state. Every input is persisted, so repeated calls produce
// identical output.
func (s *SettlementService) GetSettlement(ctx context.Context, lotId string, requesterId string) (*entity.SettlementSummary, error) {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrUnauthorized
	}

	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	if lot.Status != common.LotFinalized || lot.FinalizedAt == nil {
		return nil, ErrLotNotFinalized
	}

	winning, err := s.bidRepo.GetWinningBid(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotHasNoBids
		}

		return nil, err
	}

	return buildSettlementSummary(lot, winning, *lot.FinalizedAt), nil
}

func computeSettlementAmounts(bidAmount decimal.Decimal) entity.SettlementAmounts {
	commission := bidAmount.Mul(auctioneerCommissionRate).Round(2)
	adminFee := bidAmount.Mul(administrativeFeeRate).Round(2)

	return entity.SettlementAmounts{
		BidAmount:  bidAmount,
		Commission: commission,
		AdminFee:   adminFee,
		Total:      bidAmount.Add(commission).Add(adminFee),
	}
}

// assembleAddress joins the winner's address parts with ", ", skipping empty
// optional pieces such as the unit.
func assembleAddress(a *entity.Account) string {
	parts := []string{
		a.Street,
		a.StreetNumber,
		a.Unit,
		a.District,
		fmt.Sprintf("%s/%s", a.City, a.State),
		"CEP: " + a.PostalCode,
	}

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, ", ")
}

func buildSettlementSummary(lot *entity.Lot, winning *entity.WinningBid, finalizedAt time.Time) *entity.SettlementSummary {
	amounts := computeSettlementAmounts(winning.Amount)
	address := assembleAddress(&winning.Bidder)

	summary := &entity.SettlementSummary{
		Lot: entity.SettlementLot{
			Id:          lot.Id.String(),
			Number:      lot.Number,
			Title:       lot.Title,
			Description: lot.Description,
		},
		Winner: entity.SettlementWinner{
			Name:    winning.Bidder.Name,
			Email:   winning.Bidder.Email,
			TaxId:   winning.Bidder.TaxId,
			Phone:   winning.Bidder.Phone,
			Address: address,
		},
		Amounts:      amounts,
		WinningBidAt: winning.CreatedAt,
		FinalizedAt:  finalizedAt,
	}
	summary.NotificationText = notificationText(summary)

	return summary
}

// notificationText renders the message handed to the operator for manual
// dispatch over WhatsApp or email. The dispatch itself happens outside this
// service.
func notificationText(s *entity.SettlementSummary) string {
	var b strings.Builder

	b.WriteString("🏆 *LEILÃO ARREMATADO - LEILÕES REVERSA*\n\n")
	fmt.Fprintf(&b, "📦 *LOTE %d:* %s\n", s.Lot.Number, s.Lot.Title)
	fmt.Fprintf(&b, "📝 *Descrição:* %s\n\n", s.Lot.Description)

	b.WriteString("👤 *ARREMATANTE:*\n")
	fmt.Fprintf(&b, "Nome: %s\n", s.Winner.Name)
	fmt.Fprintf(&b, "CPF: %s\n", s.Winner.TaxId)
	fmt.Fprintf(&b, "Telefone: %s\n", s.Winner.Phone)
	fmt.Fprintf(&b, "Email: %s\n", s.Winner.Email)
	fmt.Fprintf(&b, "Endereço: %s\n\n", s.Winner.Address)

	b.WriteString("💰 *VALORES:*\n")
	fmt.Fprintf(&b, "Valor do Lance: %s\n", formatBRL(s.Amounts.BidAmount))
	fmt.Fprintf(&b, "Taxa Leiloeiro (5%%): %s\n", formatBRL(s.Amounts.Commission))
	fmt.Fprintf(&b, "Taxa Administrativa (2%%): %s\n\n", formatBRL(s.Amounts.AdminFee))
	fmt.Fprintf(&b, "💵 *VALOR TOTAL A PAGAR: %s*\n\n", formatBRL(s.Amounts.Total))

	fmt.Fprintf(&b, "📅 Data da Arrematação: %s\n\n", s.WinningBidAt.Format("02/01/2006 15:04"))

	b.WriteString("⚠️ *IMPORTANTE:*\n")
	b.WriteString("- O pagamento deve ser realizado em até 48 horas\n")
	b.WriteString("- A desistência está sujeita a multa de 20% + taxas\n")
	b.WriteString("- A retirada deve ser feita em até 5 dias úteis após o pagamento\n\n")

	b.WriteString("---\n")
	b.WriteString("Leilões Reversa - Logística Reversa em Sorocaba\n")
	b.WriteString("www.leiloesreversa.com.br")

	return b.String()
}

// formatBRL renders a decimal as Brazilian currency, comma as the decimal
// separator.
func formatBRL(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
