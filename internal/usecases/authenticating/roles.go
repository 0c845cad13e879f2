package authenticating

// Perfis de acesso. Sellers só enxergam os próprios dados; administradores
// gerenciam usuários.
const (
	RoleAdmin  = 1
	RoleSeller = 2
)
