package item

// RemoveStock takes count units out of stock.
// Fails with an out-of-stock error, leaving the stock unchanged, if count > stock.
func (i *Item) RemoveStock(count int) error {
	if count <= 0 {
		return newInvalidQuantityError(count)
	}
	if count > i.stockQuantity {
		return newNotEnoughStockError(i.id, count, i.stockQuantity)
	}
	i.stockQuantity -= count
	return nil
}

// AddStock puts count units back. Unbounded unless a stock limit is set.
func (i *Item) AddStock(count int) error {
	if err := i.CanAddStock(count); err != nil {
		return err
	}
	i.stockQuantity += count
	return nil
}

// CanAddStock reports whether AddStock(count) would succeed without changing anything
func (i *Item) CanAddStock(count int) error {
	if count <= 0 {
		return newInvalidQuantityError(count)
	}
	if i.stockLimit > 0 && i.stockQuantity+count > i.stockLimit {
		return newStockOverflowError(i.id, i.stockQuantity+count, i.stockLimit)
	}
	return nil
}
