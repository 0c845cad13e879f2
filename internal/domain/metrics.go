package domain

// DashboardMetrics é o payload completo da página inicial do dashboard:
// cards de resumo, funil de negócios, distribuição de conversas, linha do
// tempo, quebra por produto e as duas listas top-10.
type DashboardMetrics struct {
	Cards                 SummaryCards           `json:"cards"`
	Funnel                []StatusCount          `json:"funnel"`
	ConversationStatus    []StatusCount          `json:"conversationStatus"`
	Timeline              []TimelinePoint        `json:"timeline"`
	ByProduct             []ProductDealCount     `json:"byProduct"`
	RecentDeals           []RecentDeal           `json:"recentDeals"`
	CriticalConversations []CriticalConversation `json:"criticalConversations"`
}

// SummaryCards agrega os totais exibidos nos cards superiores. Conversas com
// status fora dos seis buckets fixos não entram em nenhum contador daqui.
// ClosedValue é o somatório arredondado para duas casas, o formato exibido
// no card.
type SummaryCards struct {
	TotalDeals     int     `json:"totalDeals"`
	DealsWon       int     `json:"dealsWon"`
	DealsLost      int     `json:"dealsLost"`
	ConversionRate float64 `json:"conversionRate"`
	ClosedValue    float64 `json:"closedValue"`
	ActiveProducts int     `json:"activeProducts"`
	ActiveWhatsapp int     `json:"activeWhatsapp"`

	OpenConversations      int `json:"openConversations"`
	PendingConversations   int `json:"pendingConversations"`
	PausedConversations    int `json:"pausedConversations"`
	ClosedConversations    int `json:"closedConversations"`
	ErrorConversations     int `json:"errorConversations"`
	UnhandledConversations int `json:"unhandledConversations"`
}

// StatusCount é um bucket de contagem por status com a fatia percentual do
// total, usada na renderização dos gráficos.
type StatusCount struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TimelinePoint agrupa os negócios criados em um dia-calendário. Só existem
// pontos para dias com pelo menos um negócio no período.
type TimelinePoint struct {
	Date           string  `json:"date"`
	Created        int     `json:"created"`
	Won            int     `json:"won"`
	ConversionRate float64 `json:"conversionRate"`
}

// ProductDealCount é a contagem de negócios de um produto do escopo efetivo.
// Produtos sem negócios aparecem com Count zero.
type ProductDealCount struct {
	ProductID string `json:"productId"`
	Product   string `json:"product"`
	Count     int    `json:"count"`
}

// RecentDeal é a projeção de um negócio para a tabela de recentes.
type RecentDeal struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Product  string `json:"product"`
	Status   string `json:"status"`
	Value    string `json:"value"`
	Date     string `json:"date"`
}

// CriticalConversation é a projeção de uma conversa crítica para a tabela de
// atenção do dashboard.
type CriticalConversation struct {
	ID        string `json:"id"`
	Customer  string `json:"customer"`
	Product   string `json:"product"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}
