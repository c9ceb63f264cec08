package mysql

import (
	"context"
	"errors"
	"fmt"
	"math"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"
	"shop/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

const (
	orderMemberDeliveryColumns = "orders.id AS order_id, orders.order_date AS order_date, orders.status AS order_status, " +
		"members.id AS member_id, members.name AS member_name, members.city AS member_city, " +
		"members.street AS member_street, members.zipcode AS member_zipcode, " +
		"deliveries.id AS delivery_id, deliveries.city AS delivery_city, deliveries.street AS delivery_street, " +
		"deliveries.zipcode AS delivery_zipcode, deliveries.status AS delivery_status"

	orderItemItemColumns = "order_items.id AS order_item_id, order_items.order_id AS order_item_order_id, " +
		"order_items.order_price AS order_item_price, order_items.count AS order_item_count, " +
		"items.id AS item_id, items.dtype AS item_dtype, items.name AS item_name, items.price AS item_price, " +
		"items.stock_quantity AS item_stock_quantity, items.author AS item_author, items.isbn AS item_isbn, " +
		"items.artist AS item_artist, items.etc AS item_etc, items.director AS item_director, items.actor AS item_actor"

	joinMembers    = "JOIN members ON members.id = orders.member_id"
	joinDeliveries = "JOIN deliveries ON deliveries.id = orders.delivery_id"
	joinOrderItems = "JOIN order_items ON order_items.order_id = orders.id"
	joinItems      = "JOIN items ON items.id = order_items.item_id"
)

// OrderRepositoryOptions search and stock settings from config
type OrderRepositoryOptions struct {
	MaxResults int
	NameMatch  order.NameMatch
	StockLimit int
}

// OrderRepository GORM implementation of order.Repository.
// Associations are read with explicit joins or explicit per-edge queries; GORM
// associations and Preload are not used, so each strategy's query count is what it says.
type OrderRepository struct {
	db         *gorm.DB
	translator *specification.GormTranslator
	options    OrderRepositoryOptions
}

func NewOrderRepository(db *gorm.DB, options OrderRepositoryOptions) *OrderRepository {
	if options.MaxResults <= 0 {
		options.MaxResults = order.MaxSearchResults
	}
	if options.NameMatch == "" {
		options.NameMatch = order.NameMatchCaseSensitive
	}
	return &OrderRepository{
		db:         db,
		translator: specification.NewGormTranslator(db.Dialector.Name()),
		options:    options,
	}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save new orders are inserted with their delivery and lines, generated ids are written
// back into the aggregate. Existing orders get their order and delivery status updated.
// Outside a unit of work the writes run in their own transaction.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.save(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.save(tx, o)
	})
}

func (r *OrderRepository) save(tx *gorm.DB, o *order.Order) error {
	if o.ID() == 0 {
		return r.insert(tx, o)
	}
	return r.update(tx, o)
}

func (r *OrderRepository) insert(tx *gorm.DB, o *order.Order) error {
	if !o.DeliveryLoaded() || !o.OrderItemsLoaded() {
		return errors.New("cannot insert order without delivery and order items")
	}

	deliveryPO := po.FromDeliveryDomain(o.Delivery())
	if err := tx.Create(deliveryPO).Error; err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}
	o.Delivery().AssignID(deliveryPO.ID)
	o.SyncDeliveryID()

	orderPO := po.FromOrderDomain(o)
	if err := tx.Create(orderPO).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	o.AssignID(orderPO.ID)

	lines := o.OrderItems()
	itemPOs := make([]po.OrderItemPO, len(lines))
	for i, oi := range lines {
		itemPOs[i] = po.FromOrderItemDomain(o.ID(), oi)
	}
	if err := tx.Create(&itemPOs).Error; err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	for i, oi := range lines {
		oi.AssignID(itemPOs[i].ID)
	}
	return nil
}

func (r *OrderRepository) update(tx *gorm.DB, o *order.Order) error {
	if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).
		Update("status", string(o.Status())).Error; err != nil {
		return fmt.Errorf("failed to update order %d: %w", o.ID(), err)
	}
	if o.DeliveryLoaded() {
		if err := tx.Model(&po.DeliveryPO{}).Where("id = ?", o.DeliveryID()).
			Update("status", string(o.Delivery().Status())).Error; err != nil {
			return fmt.Errorf("failed to update delivery of order %d: %w", o.ID(), err)
		}
	}
	return nil
}

// FindOne one join over the whole graph
func (r *OrderRepository) FindOne(ctx context.Context, id int64) (*order.Order, error) {
	var rows []po.OrderGraphRow
	if err := r.graphQuery(r.getDB(ctx)).Where("orders.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find order %d: %w", id, err)
	}
	orders, err := r.assembleGraph(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, order.NewOrderNotFoundError(id)
	}
	return orders[0], nil
}

// FindAllByCriteria orders ⋈ members filtered by search; only order columns are mapped,
// every association is left unloaded
func (r *OrderRepository) FindAllByCriteria(ctx context.Context, search order.OrderSearch) ([]*order.Order, error) {
	scope := r.translator.Translate(search.Specification(r.options.NameMatch))
	if scope == nil {
		return nil, errors.New("order search has no query translation")
	}

	var orderPOs []po.OrderPO
	err := r.getDB(ctx).Model(&po.OrderPO{}).
		Select("orders.*").
		Joins(joinMembers).
		Scopes(scope).
		Limit(r.options.MaxResults).
		Find(&orderPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain()
	}
	return orders, nil
}

// FindAllWithMemberDelivery to-one joins only, so paging counts orders
func (r *OrderRepository) FindAllWithMemberDelivery(ctx context.Context, page order.Page) ([]*order.Order, error) {
	query := r.getDB(ctx).Table("orders").
		Select(orderMemberDeliveryColumns).
		Joins(joinMembers).
		Joins(joinDeliveries).
		Order("orders.id")
	switch {
	case page.Limit > 0:
		query = query.Limit(page.Limit)
	case page.Offset > 0:
		query = query.Limit(math.MaxInt32)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	var rows []po.OrderMemberDeliveryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders with member and delivery: %w", err)
	}

	members := make(map[int64]*member.Member)
	orders := make([]*order.Order, 0, len(rows))
	for i := range rows {
		o, err := r.linkToOne(&rows[i], members)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// FindAllWithItem the row set has one row per line; orders are de-duplicated by id
// in first-seen order
func (r *OrderRepository) FindAllWithItem(ctx context.Context) ([]*order.Order, error) {
	var rows []po.OrderGraphRow
	if err := r.graphQuery(r.getDB(ctx)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders with items: %w", err)
	}
	return r.assembleGraph(rows)
}

func (r *OrderRepository) graphQuery(db *gorm.DB) *gorm.DB {
	return db.Table("orders").
		Select(orderMemberDeliveryColumns + ", " + orderItemItemColumns).
		Joins(joinMembers).
		Joins(joinDeliveries).
		Joins(joinOrderItems).
		Joins(joinItems).
		Order("orders.id").
		Order("order_items.id")
}

func (r *OrderRepository) assembleGraph(rows []po.OrderGraphRow) ([]*order.Order, error) {
	var (
		orders  []*order.Order
		byID    = make(map[int64]*order.Order)
		lines   = make(map[int64][]*order.OrderItem)
		members = make(map[int64]*member.Member)
		items   = make(map[int64]*item.Item)
	)
	for i := range rows {
		row := &rows[i]
		if _, seen := byID[row.OrderID]; !seen {
			o, err := r.linkToOne(&row.OrderMemberDeliveryRow, members)
			if err != nil {
				return nil, err
			}
			byID[row.OrderID] = o
			orders = append(orders, o)
		}
		oi, err := r.lineWithItem(&row.OrderItemItemRow, items)
		if err != nil {
			return nil, err
		}
		lines[row.OrderID] = append(lines[row.OrderID], oi)
	}
	for _, o := range orders {
		o.LinkOrderItems(lines[o.ID()])
	}
	return orders, nil
}

// linkToOne rebuilds an order with member and delivery; members are shared per query
func (r *OrderRepository) linkToOne(row *po.OrderMemberDeliveryRow, members map[int64]*member.Member) (*order.Order, error) {
	o := row.Order().ToDomain()

	m, ok := members[row.MemberID]
	if !ok {
		m = row.Member().ToDomain()
		members[row.MemberID] = m
	}
	if err := o.LinkMember(m); err != nil {
		return nil, err
	}
	if err := o.LinkDelivery(row.Delivery().ToDomain()); err != nil {
		return nil, err
	}
	return o, nil
}

// lineWithItem rebuilds a line with its item; items are shared per query
func (r *OrderRepository) lineWithItem(row *po.OrderItemItemRow, items map[int64]*item.Item) (*order.OrderItem, error) {
	oi := row.OrderItem().ToDomain()

	it, ok := items[row.ItemID]
	if !ok {
		var err error
		it, err = row.Item().ToDomain(r.options.StockLimit)
		if err != nil {
			return nil, err
		}
		items[row.ItemID] = it
	}
	if err := oi.LinkItem(it); err != nil {
		return nil, err
	}
	return oi, nil
}

// LoadMember one query, nothing when already loaded
func (r *OrderRepository) LoadMember(ctx context.Context, o *order.Order) error {
	if o.MemberLoaded() {
		return nil
	}
	var memberPO po.MemberPO
	if err := r.getDB(ctx).First(&memberPO, "id = ?", o.MemberID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member.NewMemberNotFoundError(o.MemberID())
		}
		return fmt.Errorf("failed to load member of order %d: %w", o.ID(), err)
	}
	return o.LinkMember(memberPO.ToDomain())
}

// LoadDelivery one query, nothing when already loaded
func (r *OrderRepository) LoadDelivery(ctx context.Context, o *order.Order) error {
	if o.DeliveryLoaded() {
		return nil
	}
	var deliveryPO po.DeliveryPO
	if err := r.getDB(ctx).First(&deliveryPO, "id = ?", o.DeliveryID()).Error; err != nil {
		return fmt.Errorf("failed to load delivery of order %d: %w", o.ID(), err)
	}
	return o.LinkDelivery(deliveryPO.ToDomain())
}

// LoadOrderItems one query for the lines; items stay unloaded
func (r *OrderRepository) LoadOrderItems(ctx context.Context, o *order.Order) error {
	if o.OrderItemsLoaded() {
		return nil
	}
	var itemPOs []po.OrderItemPO
	if err := r.getDB(ctx).Where("order_id = ?", o.ID()).Order("id").Find(&itemPOs).Error; err != nil {
		return fmt.Errorf("failed to load order items of order %d: %w", o.ID(), err)
	}
	lines := make([]*order.OrderItem, len(itemPOs))
	for i := range itemPOs {
		lines[i] = itemPOs[i].ToDomain()
	}
	o.LinkOrderItems(lines)
	return nil
}

// LoadItem one query, nothing when already loaded
func (r *OrderRepository) LoadItem(ctx context.Context, oi *order.OrderItem) error {
	if oi.ItemLoaded() {
		return nil
	}
	var itemPO po.ItemPO
	if err := r.getDB(ctx).First(&itemPO, "id = ?", oi.ItemID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item.NewItemNotFoundError(oi.ItemID())
		}
		return fmt.Errorf("failed to load item of order item %d: %w", oi.ID(), err)
	}
	it, err := itemPO.ToDomain(r.options.StockLimit)
	if err != nil {
		return err
	}
	return oi.LinkItem(it)
}

// LoadOrderItemsBatch one IN query over order_items ⋈ items for all orders
func (r *OrderRepository) LoadOrderItemsBatch(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}

	var rows []po.OrderItemItemRow
	err := r.getDB(ctx).Table("order_items").
		Select(orderItemItemColumns).
		Joins(joinItems).
		Where("order_items.order_id IN ?", ids).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to batch load order items: %w", err)
	}

	lines := make(map[int64][]*order.OrderItem, len(orders))
	items := make(map[int64]*item.Item)
	for i := range rows {
		oi, err := r.lineWithItem(&rows[i], items)
		if err != nil {
			return err
		}
		lines[rows[i].OrderItemOrderID] = append(lines[rows[i].OrderItemOrderID], oi)
	}
	for _, o := range orders {
		o.LinkOrderItems(lines[o.ID()])
	}
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
