package domain

// LineItem is one product entry in a cart, keyed by ProductID.
// UnitPricePaise and the descriptive fields are fixed at first add;
// re-adding the same product only bumps Quantity.
type LineItem struct {
	ProductID      string
	Name           string
	UnitPricePaise int64
	Quantity       int
	Unit           string
	Category       string
	ImageURL       string
	Description    string
}

// Cart actions form a closed union dispatched by Reduce.
type CartAction interface{ isCartAction() }

type AddItem struct {
	Item LineItem // Quantity is ignored; first add always starts at 1
}

type RemoveItem struct {
	ProductID string
}

type AdjustQuantity struct {
	ProductID string
	Delta     int
}

type ClearCart struct{}

func (AddItem) isCartAction()        {}
func (RemoveItem) isCartAction()     {}
func (AdjustQuantity) isCartAction() {}
func (ClearCart) isCartAction()      {}

// Reduce applies one action to an item list and returns the new list.
// It never fails: unknown product ids are no-ops, quantities never drop
// below 1 and product ids stay unique. Insertion order is preserved.
func Reduce(items []LineItem, act CartAction) []LineItem {
	switch a := act.(type) {
	case AddItem:
		for i := range items {
			if items[i].ProductID == a.Item.ProductID {
				out := copyItems(items)
				out[i].Quantity++
				return out
			}
		}
		it := a.Item
		it.Quantity = 1
		return append(copyItems(items), it)

	case RemoveItem:
		out := make([]LineItem, 0, len(items))
		for _, it := range items {
			if it.ProductID != a.ProductID {
				out = append(out, it)
			}
		}
		return out

	case AdjustQuantity:
		out := copyItems(items)
		for i := range out {
			if out[i].ProductID == a.ProductID {
				q := out[i].Quantity + a.Delta
				if q < 1 {
					q = 1
				}
				out[i].Quantity = q
				break
			}
		}
		return out

	case ClearCart:
		return nil
	}
	return items
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
