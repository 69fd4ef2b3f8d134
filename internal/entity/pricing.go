package domain

// All amounts are integer paise. The storefront's pricing rules:
// 5% tax on the subtotal, flat ₹40 delivery fee waived above ₹500.
const (
	taxRatePercent         = 5
	freeDeliveryAbovePaise = 50000
	deliveryFeePaise       = 4000
)

// Subtotal is Σ unit price × quantity over the snapshot.
func Subtotal(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPricePaise * int64(it.Quantity)
	}
	return total
}

func Tax(items []LineItem) int64 {
	return Subtotal(items) * taxRatePercent / 100
}

func DeliveryFee(items []LineItem) int64 {
	if Subtotal(items) > freeDeliveryAbovePaise {
		return 0
	}
	return deliveryFeePaise
}

// Total is recomputed from the snapshot on every call; nothing is cached.
func Total(items []LineItem) int64 {
	return Subtotal(items) + Tax(items) + DeliveryFee(items)
}
