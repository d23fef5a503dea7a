package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jccirs09/picklist/constants"
	"github.com/jccirs09/picklist/internal/common"
	"github.com/jccirs09/picklist/internal/picklist"
)

// PickingListRepository persists parsed records keyed by order number.
// Re-parsing the same document replaces its items and tag rows wholesale;
// parsed records carry no row identity to diff against.
type PickingListRepository interface {
	Upsert(ctx context.Context, pl *picklist.PickingList) (uuid.UUID, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*picklist.PickingList, error)
}

type pickingListRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPickingListRepository(pool *pgxpool.Pool, logger *slog.Logger) PickingListRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &pickingListRepository{pool: pool, logger: logger}
}

func (r *pickingListRepository) Upsert(ctx context.Context, pl *picklist.PickingList) (uuid.UUID, error) {
	if pl.OrderNumber == "" {
		return uuid.Nil, common.NewAppError("INVALID_RECORD", "order number is required", common.ErrInvalidInput)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: begin: %w", common.ErrDatabase, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var listID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO picking_lists (
			id, order_number, print_date_time, picking_group, buyer,
			ship_date, purchase_order_number, order_date, job_name,
			sales_rep, ship_via,
			sold_to_name, sold_to_email, sold_to_address, sold_to_city,
			sold_to_province, sold_to_postal_code,
			ship_to_name, ship_to_email, ship_to_address, ship_to_city,
			ship_to_province, ship_to_postal_code,
			fob_point, route, terms, receiving_hours, call_before_phone,
			total_weight_lbs
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
			$27, $28, $29
		)
		ON CONFLICT (order_number) DO UPDATE SET
			print_date_time = EXCLUDED.print_date_time,
			picking_group = EXCLUDED.picking_group,
			buyer = EXCLUDED.buyer,
			ship_date = EXCLUDED.ship_date,
			purchase_order_number = EXCLUDED.purchase_order_number,
			order_date = EXCLUDED.order_date,
			job_name = EXCLUDED.job_name,
			sales_rep = EXCLUDED.sales_rep,
			ship_via = EXCLUDED.ship_via,
			sold_to_name = EXCLUDED.sold_to_name,
			sold_to_email = EXCLUDED.sold_to_email,
			sold_to_address = EXCLUDED.sold_to_address,
			sold_to_city = EXCLUDED.sold_to_city,
			sold_to_province = EXCLUDED.sold_to_province,
			sold_to_postal_code = EXCLUDED.sold_to_postal_code,
			ship_to_name = EXCLUDED.ship_to_name,
			ship_to_email = EXCLUDED.ship_to_email,
			ship_to_address = EXCLUDED.ship_to_address,
			ship_to_city = EXCLUDED.ship_to_city,
			ship_to_province = EXCLUDED.ship_to_province,
			ship_to_postal_code = EXCLUDED.ship_to_postal_code,
			fob_point = EXCLUDED.fob_point,
			route = EXCLUDED.route,
			terms = EXCLUDED.terms,
			receiving_hours = EXCLUDED.receiving_hours,
			call_before_phone = EXCLUDED.call_before_phone,
			total_weight_lbs = EXCLUDED.total_weight_lbs,
			updated_at = now()
		RETURNING id`,
		uuid.New(), pl.OrderNumber, pl.PrintDateTime, pl.PickingGroup, pl.Buyer,
		pl.ShipDate, pl.PurchaseOrderNumber, pl.OrderDate, pl.JobName,
		pl.SalesRep, pl.ShipVia,
		pl.SoldTo.Name, pl.SoldTo.Email, pl.SoldTo.AddressLine, pl.SoldTo.City,
		pl.SoldTo.Province, pl.SoldTo.PostalCode,
		pl.ShipTo.Name, pl.ShipTo.Email, pl.ShipTo.AddressLine, pl.ShipTo.City,
		pl.ShipTo.Province, pl.ShipTo.PostalCode,
		pl.FOBPoint, pl.Route, pl.Terms, pl.ReceivingHours, pl.CallBeforePhone,
		pl.TotalWeightLbs,
	).Scan(&listID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: upsert picking list: %w", common.ErrDatabase, err)
	}

	// Cascade removes the old tag rows with their items.
	if _, err := tx.Exec(ctx, `DELETE FROM picking_list_items WHERE picking_list_id = $1`, listID); err != nil {
		return uuid.Nil, fmt.Errorf("%w: clear items: %w", common.ErrDatabase, err)
	}

	for pos, item := range pl.Items {
		itemID := uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO picking_list_items (
				id, picking_list_id, position, line_no, quantity,
				quantity_unit, quantity_staged, item_code, width_in,
				length_in, weight_lbs, description, process_type
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			itemID, listID, pos, item.LineNo, item.Quantity,
			string(item.QuantityUnit), item.QuantityStaged, item.ItemCode,
			item.WidthIn, item.LengthIn, item.WeightLbs, item.Description,
			processTypeString(item.ProcessType),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: insert item %d: %w", common.ErrDatabase, item.LineNo, err)
		}

		for tpos, tag := range item.TagDetails {
			_, err := tx.Exec(ctx, `
				INSERT INTO item_tag_details (
					id, item_id, position, tag_no, heat_no, mill_ref,
					qty, qty_unit, thickness_in, size, location
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				uuid.New(), itemID, tpos, tag.TagNo, tag.HeatNo, tag.MillRef,
				tag.Qty, unitString(tag.QtyUnit), tag.ThicknessIn, tag.Size, tag.Location,
			)
			if err != nil {
				return uuid.Nil, fmt.Errorf("%w: insert tag detail: %w", common.ErrDatabase, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("%w: commit: %w", common.ErrDatabase, err)
	}

	r.logger.Info("picking list upserted",
		"order_number", pl.OrderNumber,
		"id", listID,
		"items", len(pl.Items),
	)
	return listID, nil
}

func (r *pickingListRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*picklist.PickingList, error) {
	var (
		pl     picklist.PickingList
		listID uuid.UUID
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, order_number, print_date_time, picking_group, buyer,
			ship_date, purchase_order_number, order_date, job_name,
			sales_rep, ship_via,
			sold_to_name, sold_to_email, sold_to_address, sold_to_city,
			sold_to_province, sold_to_postal_code,
			ship_to_name, ship_to_email, ship_to_address, ship_to_city,
			ship_to_province, ship_to_postal_code,
			fob_point, route, terms, receiving_hours, call_before_phone,
			total_weight_lbs
		FROM picking_lists WHERE order_number = $1`, orderNumber,
	).Scan(
		&listID, &pl.OrderNumber, &pl.PrintDateTime, &pl.PickingGroup, &pl.Buyer,
		&pl.ShipDate, &pl.PurchaseOrderNumber, &pl.OrderDate, &pl.JobName,
		&pl.SalesRep, &pl.ShipVia,
		&pl.SoldTo.Name, &pl.SoldTo.Email, &pl.SoldTo.AddressLine, &pl.SoldTo.City,
		&pl.SoldTo.Province, &pl.SoldTo.PostalCode,
		&pl.ShipTo.Name, &pl.ShipTo.Email, &pl.ShipTo.AddressLine, &pl.ShipTo.City,
		&pl.ShipTo.Province, &pl.ShipTo.PostalCode,
		&pl.FOBPoint, &pl.Route, &pl.Terms, &pl.ReceivingHours, &pl.CallBeforePhone,
		&pl.TotalWeightLbs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get picking list: %w", common.ErrDatabase, err)
	}

	items, err := r.loadItems(ctx, listID)
	if err != nil {
		return nil, common.WrapError(err, "load items")
	}
	pl.Items = items
	return &pl, nil
}

func (r *pickingListRepository) loadItems(ctx context.Context, listID uuid.UUID) ([]picklist.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, line_no, quantity, quantity_unit, quantity_staged,
			item_code, width_in, length_in, weight_lbs, description,
			process_type
		FROM picking_list_items
		WHERE picking_list_id = $1
		ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", common.ErrDatabase, err)
	}
	defer rows.Close()

	items := []picklist.Item{}
	var itemIDs []uuid.UUID
	for rows.Next() {
		var (
			item     picklist.Item
			itemID   uuid.UUID
			unit     string
			procType *string
		)
		if err := rows.Scan(&itemID, &item.LineNo, &item.Quantity, &unit,
			&item.QuantityStaged, &item.ItemCode, &item.WidthIn,
			&item.LengthIn, &item.WeightLbs, &item.Description, &procType); err != nil {
			return nil, fmt.Errorf("%w: scan item: %w", common.ErrDatabase, err)
		}
		if u, ok := constants.ParseQuantityUnit(unit); ok {
			item.QuantityUnit = u
		}
		if procType != nil {
			p := constants.ProcessType(*procType)
			item.ProcessType = &p
		}
		item.TagDetails = []picklist.TagDetail{}
		items = append(items, item)
		itemIDs = append(itemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate items: %w", common.ErrDatabase, err)
	}

	for i, itemID := range itemIDs {
		tags, err := r.loadTagDetails(ctx, itemID)
		if err != nil {
			return nil, err
		}
		items[i].TagDetails = tags
	}
	return items, nil
}

func (r *pickingListRepository) loadTagDetails(ctx context.Context, itemID uuid.UUID) ([]picklist.TagDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tag_no, heat_no, mill_ref, qty, qty_unit, thickness_in,
			size, location
		FROM item_tag_details
		WHERE item_id = $1
		ORDER BY position`, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: list tag details: %w", common.ErrDatabase, err)
	}
	defer rows.Close()

	tags := []picklist.TagDetail{}
	for rows.Next() {
		var (
			tag  picklist.TagDetail
			unit *string
		)
		if err := rows.Scan(&tag.TagNo, &tag.HeatNo, &tag.MillRef, &tag.Qty,
			&unit, &tag.ThicknessIn, &tag.Size, &tag.Location); err != nil {
			return nil, fmt.Errorf("%w: scan tag detail: %w", common.ErrDatabase, err)
		}
		if unit != nil {
			if u, ok := constants.ParseQuantityUnit(*unit); ok {
				tag.QtyUnit = &u
			}
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tag details: %w", common.ErrDatabase, err)
	}
	return tags, nil
}

func processTypeString(pt *constants.ProcessType) *string {
	if pt == nil {
		return nil
	}
	s := string(*pt)
	return &s
}

func unitString(u *constants.QuantityUnit) *string {
	if u == nil {
		return nil
	}
	s := string(*u)
	return &s
}
