package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Postgres struct {
	db *sql.DB
}

func NewPostgresStorage(dbStorageConnect string) (*Postgres, error) {
	db, err := sql.Open("pgx", dbStorageConnect)
	if err != nil {
		return nil, fmt.Errorf("error while postgresql connect: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error while setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("error while applying migrations: %w", err)
	}

	return &Postgres{
		db: db,
	}, nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error) {
	var item entity.StockItem
	row := s.db.QueryRowContext(ctx,
		`SELECT id, denomination, current_stock, updated_at FROM stock_items WHERE id = $1`, id)
	err := row.Scan(&item.ID, &item.Denomination, &item.CurrentStock, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.StockItem{}, err_storage.ErrStockItemNotFound
	}
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while getting stock item: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT quantity, moved_at, increase FROM stock_movements WHERE stock_item_id = $1 ORDER BY id`, id)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while getting stock movements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement entity.StockMovement
		if err := rows.Scan(&movement.Quantity, &movement.At, &movement.Increase); err != nil {
			return entity.StockItem{}, fmt.Errorf("error while scanning stock movement: %w", err)
		}
		item.Movements = append(item.Movements, movement)
	}
	if err := rows.Err(); err != nil {
		return entity.StockItem{}, fmt.Errorf("error while iterating stock movements: %w", err)
	}

	return item, nil
}

func (s *Postgres) SaveStockItem(ctx context.Context, item entity.StockItem) (entity.StockItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_items (id, denomination, current_stock, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET denomination = EXCLUDED.denomination,
		    current_stock = EXCLUDED.current_stock,
		    updated_at = EXCLUDED.updated_at`,
		item.ID, item.Denomination, item.CurrentStock, item.UpdatedAt)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while saving stock item: %w", err)
	}

	// The entity carries its whole history; rewrite it as one unit.
	if _, err := tx.ExecContext(ctx, `DELETE FROM stock_movements WHERE stock_item_id = $1`, item.ID); err != nil {
		return entity.StockItem{}, fmt.Errorf("error while clearing stock movements: %w", err)
	}
	for _, movement := range item.Movements {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stock_movements (stock_item_id, quantity, moved_at, increase)
			VALUES ($1, $2, $3, $4)`,
			item.ID, movement.Quantity, movement.At, movement.Increase)
		if err != nil {
			return entity.StockItem{}, fmt.Errorf("error while saving stock movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return entity.StockItem{}, fmt.Errorf("error while committing stock item: %w", err)
	}

	return item, nil
}

func (s *Postgres) GetManufacturedItem(ctx context.Context, id uuid.UUID) (entity.ManufacturedItem, error) {
	var item entity.ManufacturedItem
	row := s.db.QueryRowContext(ctx,
		`SELECT id, denomination, prep_minutes FROM manufactured_items WHERE id = $1`, id)
	err := row.Scan(&item.ID, &item.Denomination, &item.PrepMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ManufacturedItem{}, err_storage.ErrManufacturedItemNotFound
	}
	if err != nil {
		return entity.ManufacturedItem{}, fmt.Errorf("error while getting manufactured item: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT stock_item_id, quantity FROM recipe_lines WHERE manufactured_item_id = $1 ORDER BY position`, id)
	if err != nil {
		return entity.ManufacturedItem{}, fmt.Errorf("error while getting recipe lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.RecipeLine
		if err := rows.Scan(&line.StockItemID, &line.Quantity); err != nil {
			return entity.ManufacturedItem{}, fmt.Errorf("error while scanning recipe line: %w", err)
		}
		item.Recipe = append(item.Recipe, line)
	}
	if err := rows.Err(); err != nil {
		return entity.ManufacturedItem{}, fmt.Errorf("error while iterating recipe lines: %w", err)
	}

	return item, nil
}

func (s *Postgres) GetCustomerByUID(ctx context.Context, uid string) (entity.Customer, error) {
	var customer entity.Customer
	row := s.db.QueryRowContext(ctx,
		`SELECT id, uid, name, surname FROM customers WHERE uid = $1`, uid)
	err := row.Scan(&customer.ID, &customer.UID, &customer.Name, &customer.Surname)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Customer{}, err_storage.ErrCustomerNotFound
	}
	if err != nil {
		return entity.Customer{}, fmt.Errorf("error while getting customer: %w", err)
	}

	return customer, nil
}

func (s *Postgres) GetEmployee(ctx context.Context, id uuid.UUID) (entity.Employee, error) {
	var employee entity.Employee
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, role FROM employees WHERE id = $1`, id)
	err := row.Scan(&employee.ID, &employee.Name, &employee.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Employee{}, err_storage.ErrEmployeeNotFound
	}
	if err != nil {
		return entity.Employee{}, fmt.Errorf("error while getting employee: %w", err)
	}

	return employee, nil
}

func (s *Postgres) CountEmployeesByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error while counting employees: %w", err)
	}

	return count, nil
}

func (s *Postgres) GetStateByDenomination(ctx context.Context, denomination string) (entity.OrderState, error) {
	var state entity.OrderState
	row := s.db.QueryRowContext(ctx,
		`SELECT id, denomination FROM order_states WHERE denomination = $1`, denomination)
	err := row.Scan(&state.ID, &state.Denomination)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.OrderState{}, err_storage.ErrStateNotFound
	}
	if err != nil {
		return entity.OrderState{}, fmt.Errorf("error while getting state: %w", err)
	}

	return state, nil
}

const orderColumns = `
	o.id, o.created_at, o.updated_at, o.prep_minutes, o.promised_at,
	o.is_delivery, o.payment_method,
	c.id, c.uid, c.name, c.surname,
	st.id, st.denomination,
	e.id, e.name, e.role`

const orderJoins = `
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	JOIN order_states st ON st.id = o.state_id
	LEFT JOIN employees e ON e.id = o.courier_id`

func (s *Postgres) GetOrder(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+orderColumns+orderJoins+` WHERE o.id = $1`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Order{}, err_storage.ErrOrderNotFound
	}
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while getting order: %w", err)
	}

	if err := s.loadOrderLines(ctx, &order); err != nil {
		return entity.Order{}, err
	}

	return order, nil
}

func (s *Postgres) SaveOrder(ctx context.Context, order entity.Order) (entity.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while starting transaction: %w", err)
	}
	defer tx.Rollback()

	var courierID any
	if order.Courier != nil {
		courierID = order.Courier.ID
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, state_id, created_at, updated_at,
		                    prep_minutes, promised_at, is_delivery, payment_method, courier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET state_id = EXCLUDED.state_id,
		    updated_at = EXCLUDED.updated_at,
		    prep_minutes = EXCLUDED.prep_minutes,
		    promised_at = EXCLUDED.promised_at,
		    is_delivery = EXCLUDED.is_delivery,
		    payment_method = EXCLUDED.payment_method,
		    courier_id = EXCLUDED.courier_id`,
		order.ID, order.Customer.ID, order.State.ID, order.CreatedAt, order.UpdatedAt,
		order.PrepMinutes, order.PromisedAt, order.IsDelivery, order.PaymentMethod, courierID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while saving order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return entity.Order{}, fmt.Errorf("error while clearing order lines: %w", err)
	}

	for position, line := range order.Lines {
		var manufacturedID, stockID any
		switch item := line.Item.(type) {
		case entity.ManufacturedLine:
			manufacturedID = item.Item.ID
		case entity.StockLine:
			stockID = item.Item.ID
		default:
			return entity.Order{}, fmt.Errorf("order line %d holds no known item reference", position)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, position, quantity,
			                         manufactured_item_id, stock_item_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, order.ID, position, line.Quantity, manufacturedID, stockID, line.UpdatedAt)
		if err != nil {
			return entity.Order{}, fmt.Errorf("error while saving order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return entity.Order{}, fmt.Errorf("error while committing order: %w", err)
	}

	return order, nil
}

func (s *Postgres) FindOrdersByStates(ctx context.Context, denominations ...string) (entity.Orders, error) {
	return s.findOrders(ctx, "", denominations)
}

func (s *Postgres) FindCustomerOrdersByStates(ctx context.Context, uid string, denominations ...string) (entity.Orders, error) {
	return s.findOrders(ctx, uid, denominations)
}

func (s *Postgres) findOrders(ctx context.Context, uid string, denominations []string) (entity.Orders, error) {
	if len(denominations) == 0 {
		return entity.Orders{}, nil
	}

	params := make([]string, 0, len(denominations))
	args := make([]any, 0, len(denominations)+1)
	for i, denomination := range denominations {
		params = append(params, fmt.Sprintf("$%d", i+1))
		args = append(args, denomination)
	}

	query := `SELECT` + orderColumns + orderJoins +
		` WHERE st.denomination IN (` + strings.Join(params, ",") + `)`
	if uid != "" {
		query += fmt.Sprintf(" AND c.uid = $%d", len(args)+1)
		args = append(args, uid)
	}
	query += " ORDER BY o.created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error while finding orders: %w", err)
	}
	defer rows.Close()

	orders := make(entity.Orders, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("error while scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error while iterating orders: %w", err)
	}

	for i := range orders {
		if err := s.loadOrderLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (entity.Order, error) {
	var order entity.Order
	var courierID sql.NullString
	var courierName, courierRole sql.NullString

	err := row.Scan(
		&order.ID, &order.CreatedAt, &order.UpdatedAt, &order.PrepMinutes, &order.PromisedAt,
		&order.IsDelivery, &order.PaymentMethod,
		&order.Customer.ID, &order.Customer.UID, &order.Customer.Name, &order.Customer.Surname,
		&order.State.ID, &order.State.Denomination,
		&courierID, &courierName, &courierRole,
	)
	if err != nil {
		return entity.Order{}, err
	}

	if courierID.Valid {
		id, err := uuid.Parse(courierID.String)
		if err != nil {
			return entity.Order{}, fmt.Errorf("error while parsing courier id: %w", err)
		}
		order.Courier = &entity.Employee{
			ID:   id,
			Name: courierName.String,
			Role: courierRole.String,
		}
	}

	return order, nil
}

func (s *Postgres) loadOrderLines(ctx context.Context, order *entity.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, quantity, manufactured_item_id, stock_item_id, updated_at
		FROM order_lines WHERE order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("error while getting order lines: %w", err)
	}
	defer rows.Close()

	type rawLine struct {
		line           entity.OrderLine
		manufacturedID uuid.NullUUID
		stockID        uuid.NullUUID
	}

	var raw []rawLine
	for rows.Next() {
		var r rawLine
		if err := rows.Scan(&r.line.ID, &r.line.Quantity, &r.manufacturedID, &r.stockID, &r.line.UpdatedAt); err != nil {
			return fmt.Errorf("error while scanning order line: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error while iterating order lines: %w", err)
	}

	// Item snapshots are rebuilt from the catalog on read.
	for _, r := range raw {
		line := r.line
		switch {
		case r.manufacturedID.Valid:
			item, err := s.GetManufacturedItem(ctx, r.manufacturedID.UUID)
			if err != nil {
				return err
			}
			line.Item = entity.ManufacturedLine{Item: item}
		case r.stockID.Valid:
			item, err := s.GetStockItem(ctx, r.stockID.UUID)
			if err != nil {
				return err
			}
			line.Item = entity.StockLine{Item: item}
		default:
			return fmt.Errorf("order line %s holds no item reference", line.ID)
		}
		order.Lines = append(order.Lines, line)
	}

	return nil
}
