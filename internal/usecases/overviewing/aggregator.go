package overviewing

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/pkg/utils"
)

const topListLimit = 10

// Aggregate transforma os snapshots buscados em todas as métricas do
// dashboard. É uma função pura e determinística: mesma entrada (na mesma
// ordem) produz sempre a mesma saída, sem I/O nem relógio.
func Aggregate(
	deals []*domain.Deal,
	conversations []*domain.Conversation,
	products []*domain.Product,
	whatsappNumbers []*domain.WhatsappNumber,
	scope []string,
) *domain.DashboardMetrics {
	productNames := make(map[string]string, len(products))
	for _, product := range products {
		productNames[product.ID] = product.Name
	}

	return &domain.DashboardMetrics{
		Cards:                 summaryCards(deals, conversations, products, whatsappNumbers),
		Funnel:                dealsFunnel(deals),
		ConversationStatus:    conversationDistribution(conversations),
		Timeline:              dealsTimeline(deals),
		ByProduct:             dealsByProduct(deals, scope, productNames),
		RecentDeals:           recentDeals(deals, productNames),
		CriticalConversations: criticalConversations(conversations, productNames),
	}
}

func summaryCards(
	deals []*domain.Deal,
	conversations []*domain.Conversation,
	products []*domain.Product,
	whatsappNumbers []*domain.WhatsappNumber,
) domain.SummaryCards {
	cards := domain.SummaryCards{
		TotalDeals:     len(deals),
		ActiveProducts: len(products),
	}

	for _, deal := range deals {
		switch deal.Status {
		case domain.DealStatusWon:
			cards.DealsWon++
			if deal.ClosingValue != nil {
				cards.ClosedValue += *deal.ClosingValue
			}
		case domain.DealStatusLost:
			cards.DealsLost++
		}
	}

	// Somatório de floats acumula ruído; o card exibe duas casas
	cards.ClosedValue = utils.RoundWithTwoDecimalPlace(cards.ClosedValue)
	cards.ConversionRate = conversionRate(cards.DealsWon, cards.TotalDeals)

	for _, number := range whatsappNumbers {
		if number.Status == domain.WhatsappStatusOpen {
			cards.ActiveWhatsapp++
		}
	}

	// Conversas com status fora dos seis buckets fixos não entram em nenhum
	// contador dos cards.
	for _, conversation := range conversations {
		switch conversation.Status {
		case domain.ConversationStatusOpen:
			cards.OpenConversations++
		case domain.ConversationStatusPending:
			cards.PendingConversations++
		case domain.ConversationStatusPaused:
			cards.PausedConversations++
		case domain.ConversationStatusClosed:
			cards.ClosedConversations++
		case domain.ConversationStatusError:
			cards.ErrorConversations++
		case domain.ConversationStatusUnhandled:
			cards.UnhandledConversations++
		}
	}

	return cards
}

// conversionRate devolve a taxa de conversão em percentual com uma casa
// decimal; zero quando não há negócios.
func conversionRate(won, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(total)*1000) / 10
}

// dealsFunnel agrupa os negócios pelo status bruto, sem enumeração fixa, na
// ordem da primeira ocorrência de cada status.
func dealsFunnel(deals []*domain.Deal) []domain.StatusCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, deal := range deals {
		if _, seen := counts[deal.Status]; !seen {
			order = append(order, deal.Status)
		}
		counts[deal.Status]++
	}

	total := len(deals)
	funnel := make([]domain.StatusCount, 0, len(order))
	for _, status := range order {
		funnel = append(funnel, domain.StatusCount{
			Status:  status,
			Count:   counts[status],
			Percent: percentOfTotal(counts[status], total),
		})
	}

	return funnel
}

// conversationDistribution emite sempre os seis buckets fixos, na ordem
// fixa, com contagem zero para buckets sem conversa.
func conversationDistribution(conversations []*domain.Conversation) []domain.StatusCount {
	counts := make(map[string]int)
	for _, conversation := range conversations {
		counts[conversation.Status]++
	}

	total := len(conversations)
	distribution := make([]domain.StatusCount, 0, len(domain.ConversationStatuses))
	for _, status := range domain.ConversationStatuses {
		distribution = append(distribution, domain.StatusCount{
			Status:  status,
			Count:   counts[status],
			Percent: percentOfTotal(counts[status], total),
		})
	}

	return distribution
}

func percentOfTotal(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// dealsTimeline agrupa os negócios pelo dia-calendário de criação, na ordem
// da primeira ocorrência de cada dia. Dias sem negócio não são sintetizados.
func dealsTimeline(deals []*domain.Deal) []domain.TimelinePoint {
	type bucket struct {
		created int
		won     int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, deal := range deals {
		date := deal.CreatedAt.Format(time.DateOnly)
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
			order = append(order, date)
		}
		b.created++
		if deal.IsWon() {
			b.won++
		}
	}

	timeline := make([]domain.TimelinePoint, 0, len(order))
	for _, date := range order {
		b := buckets[date]
		point := domain.TimelinePoint{
			Date:    date,
			Created: b.created,
			Won:     b.won,
		}
		if b.created > 0 {
			point.ConversionRate = float64(b.won) / float64(b.created) * 100
		}
		timeline = append(timeline, point)
	}

	return timeline
}

// dealsByProduct cobre exatamente o escopo efetivo: todo produto do escopo
// aparece, mesmo com contagem zero, e negócios de produtos fora do escopo
// não criam entradas.
func dealsByProduct(deals []*domain.Deal, scope []string, productNames map[string]string) []domain.ProductDealCount {
	counts := make(map[string]int)
	for _, deal := range deals {
		counts[deal.ProductID]++
	}

	byProduct := make([]domain.ProductDealCount, 0, len(scope))
	for _, productID := range scope {
		label, ok := productNames[productID]
		if !ok {
			label = productID
		}
		byProduct = append(byProduct, domain.ProductDealCount{
			ProductID: productID,
			Product:   label,
			Count:     counts[productID],
		})
	}

	return byProduct
}

func recentDeals(deals []*domain.Deal, productNames map[string]string) []domain.RecentDeal {
	sorted := make([]*domain.Deal, len(deals))
	copy(sorted, deals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > topListLimit {
		sorted = sorted[:topListLimit]
	}

	recent := make([]domain.RecentDeal, 0, len(sorted))
	for _, deal := range sorted {
		product, ok := productNames[deal.ProductID]
		if !ok {
			product = "-"
		}

		value := "-"
		if deal.ClosingValue != nil {
			value = "R$ " + strconv.FormatFloat(*deal.ClosingValue, 'f', -1, 64)
		}

		recent = append(recent, domain.RecentDeal{
			ID:       deal.ID,
			Customer: stringOrDash(deal.CustomerName),
			Product:  product,
			Status:   deal.Status,
			Value:    value,
			Date:     deal.CreatedAt.Format(time.DateOnly),
		})
	}

	return recent
}

func criticalConversations(conversations []*domain.Conversation, productNames map[string]string) []domain.CriticalConversation {
	critical := make([]*domain.Conversation, 0)
	for _, conversation := range conversations {
		if conversation.IsCritical() {
			critical = append(critical, conversation)
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].UpdatedAt.After(critical[j].UpdatedAt)
	})

	if len(critical) > topListLimit {
		critical = critical[:topListLimit]
	}

	projected := make([]domain.CriticalConversation, 0, len(critical))
	for _, conversation := range critical {
		product, ok := productNames[conversation.ProductID]
		if !ok {
			product = "-"
		}

		updatedAt := "-"
		if !conversation.UpdatedAt.IsZero() {
			updatedAt = conversation.UpdatedAt.Format(time.DateOnly)
		}

		projected = append(projected, domain.CriticalConversation{
			ID:        conversation.ID,
			Customer:  stringOrDash(conversation.CustomerName),
			Product:   product,
			Status:    conversation.Status,
			UpdatedAt: updatedAt,
		})
	}

	return projected
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
