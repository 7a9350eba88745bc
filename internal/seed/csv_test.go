package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCustomers(t *testing.T) {
	path := writeFile(t, t.TempDir(), customersFile,
		"_id,name,email,age,location,gender\n"+
			"C1,Ada,ada@example.com,36,London,female\n"+
			"C2,Grace,grace@example.com,45,New York,female\n")

	customers, err := loadCustomers(path)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	if customers[0].ID != "C1" || customers[0].Age != 36 {
		t.Fatalf("unexpected first customer: %+v", customers[0])
	}
}

func TestLoadOrdersParsesQuotedProductsColumn(t *testing.T) {
	// The products column is itself comma-separated, so it rides inside a
	// standard double-quoted CSV field.
	path := writeFile(t, t.TempDir(), ordersFile,
		"_id,customerId,products,totalAmount,orderDate,status\n"+
			`O1,C1,"[{'productId': 'P1', 'quantity': 2, 'priceAtPurchase': 10.5}]",21.0,2024-03-01T10:00:00Z,completed`+"\n")

	orders, err := loadOrders(path)
	if err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	order := orders[0]
	if order.ID != "O1" || order.CustomerID != "C1" {
		t.Fatalf("unexpected order identity: %+v", order)
	}
	if order.TotalAmount != 21.0 {
		t.Fatalf("expected totalAmount 21.0, got %v", order.TotalAmount)
	}
	if !order.OrderDate.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected orderDate: %v", order.OrderDate)
	}
	if order.RawProducts == "" {
		t.Fatalf("expected raw products preserved for storage")
	}
}

func TestLoadOrdersRejectsInvalidStatus(t *testing.T) {
	path := writeFile(t, t.TempDir(), ordersFile,
		"_id,customerId,products,totalAmount,orderDate,status\n"+
			`O1,C1,"[]",10.0,2024-03-01,shipped`+"\n")

	_, err := loadOrders(path)
	if !errors.Is(err, orderdomain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestLoadOrdersRejectsMalformedProducts(t *testing.T) {
	path := writeFile(t, t.TempDir(), ordersFile,
		"_id,customerId,products,totalAmount,orderDate,status\n"+
			`O1,C1,"[{'productId':",10.0,2024-03-01,completed`+"\n")

	_, err := loadOrders(path)
	if err == nil {
		t.Fatalf("expected decode error for malformed products")
	}
}
