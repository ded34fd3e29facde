package models

// All returns every persistence model, in creation order.
func All() []interface{} {
	return []interface{}{
		&ShopModel{},
		&ProductModel{},
		&RaffleModel{},
		&RaffleTicketModel{},
		&DepositModel{},
		&AuditLogModel{},
	}
}
