package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	"github.com/dantecodex/graph-mongo/internal/lineitem"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

// row pairs a CSV record with its header, so fields are addressed by column
// name instead of position.
type row struct {
	header map[string]int
	fields []string
	line   int
}

func (r row) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r row) getInt(column string) (int, error) {
	value, err := strconv.Atoi(r.get(column))
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, column, err)
	}
	return value, nil
}

func (r row) getFloat(column string) (float64, error) {
	value, err := strconv.ParseFloat(r.get(column), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, column, err)
	}
	return value, nil
}

func readRows(path string) ([]row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(headerRecord))
	for i, name := range headerRecord {
		header[strings.TrimSpace(name)] = i
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row{header: header, fields: record, line: line})
	}
	return rows, nil
}

func loadCustomers(path string) ([]customerdomain.Customer, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	customers := make([]customerdomain.Customer, 0, len(rows))
	for _, r := range rows {
		age, err := r.getInt("age")
		if err != nil {
			return nil, err
		}
		customers = append(customers, customerdomain.Customer{
			ID:       r.get("_id"),
			Name:     r.get("name"),
			Email:    r.get("email"),
			Age:      age,
			Location: r.get("location"),
			Gender:   r.get("gender"),
		})
	}
	return customers, nil
}

func loadProducts(path string) ([]productdomain.Product, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	products := make([]productdomain.Product, 0, len(rows))
	for _, r := range rows {
		price, err := r.getFloat("price")
		if err != nil {
			return nil, err
		}
		stock, err := r.getInt("stock")
		if err != nil {
			return nil, err
		}
		products = append(products, productdomain.Product{
			ID:       r.get("_id"),
			Name:     r.get("name"),
			Category: r.get("category"),
			Price:    price,
			Stock:    stock,
		})
	}
	return products, nil
}

func loadOrders(path string) ([]orderdomain.Order, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	orders := make([]orderdomain.Order, 0, len(rows))
	for _, r := range rows {
		id := r.get("_id")

		raw := r.get("products")
		// Reject malformed payloads at import time instead of letting them
		// poison the analytics queries later.
		if _, err := lineitem.DecodeOrder(id, raw); err != nil {
			return nil, err
		}

		total, err := r.getFloat("totalAmount")
		if err != nil {
			return nil, err
		}

		orderDate, err := parseOrderDate(r.get("orderDate"))
		if err != nil {
			return nil, fmt.Errorf("line %d: column orderDate: %w", r.line, err)
		}

		status := r.get("status")
		if !orderdomain.ValidStatus(status) {
			return nil, fmt.Errorf("line %d: order %s: %w: %q", r.line, id, orderdomain.ErrInvalidStatus, status)
		}

		orders = append(orders, orderdomain.Order{
			ID:          id,
			CustomerID:  r.get("customerId"),
			RawProducts: raw,
			TotalAmount: total,
			OrderDate:   orderDate,
			Status:      status,
		})
	}
	return orders, nil
}

func parseOrderDate(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
