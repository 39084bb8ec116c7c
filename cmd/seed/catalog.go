package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// idSpace espacio de los UUID deterministas: volver a generar el seed produce los mismos IDs.
var idSpace = uuid.MustParse("6f1d0c7e-3a51-4f8e-9a55-0f3b9a7c2d10")

func stableID(kind, key string) string {
	return uuid.NewSHA1(idSpace, []byte(kind+":"+strings.ToLower(strings.TrimSpace(key)))).String()
}

// decode devuelve el contenido en UTF-8. enc: auto | utf8 | latin1.
// En auto, un archivo que no es UTF-8 válido se lee como ISO-8859-1 (exportaciones de Excel).
func decode(data []byte, enc string) ([]byte, error) {
	switch strings.ToLower(enc) {
	case "utf8", "utf-8":
		return bytes.TrimPrefix(data, []byte("\ufeff")), nil
	case "auto", "":
		if utf8.Valid(data) {
			return bytes.TrimPrefix(data, []byte("\ufeff")), nil
		}
		fallthrough
	case "latin1", "iso-8859-1":
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		return out, err
	default:
		return nil, fmt.Errorf("encoding %q no soportado", enc)
	}
}

// readRows lee un CSV con cabecera y devuelve cada fila como columna -> valor.
func readRows(r io.Reader, required ...string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	for _, col := range required {
		found := false
		for _, h := range header {
			found = found || h == col
		}
		if !found {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	var rows []map[string]string
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
}

// Catalog datos a volcar en el script.
type Catalog struct {
	Users    []*entity.User
	Products []*entity.Product
	Orders   []*entity.Order
	Skipped  []string // motivos de filas descartadas
}

// ParseProducts crea vendedores y productos. Una fila inválida se descarta con su motivo.
func ParseProducts(r io.Reader, cat *Catalog) error {
	rows, err := readRows(r, "seller_email", "name", "price")
	if err != nil {
		return err
	}
	sellers := make(map[string]*entity.User)
	for _, u := range cat.Users {
		sellers[strings.ToLower(u.Email)] = u
	}
	for i, row := range rows {
		line := i + 2
		email := strings.ToLower(row["seller_email"])
		if email == "" || row["name"] == "" {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("productos línea %d: seller_email y name son requeridos", line))
			continue
		}
		price, err := decimal.NewFromString(row["price"])
		if err != nil || price.IsNegative() {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("productos línea %d: precio %q inválido", line, row["price"]))
			continue
		}
		stock := 0
		if row["stock"] != "" {
			if stock, err = strconv.Atoi(row["stock"]); err != nil || stock < 0 {
				cat.Skipped = append(cat.Skipped, fmt.Sprintf("productos línea %d: stock %q inválido", line, row["stock"]))
				continue
			}
		}
		status := entity.ProductStatus(strings.ToLower(row["status"]))
		if status == "" {
			status = entity.ProductApproved
		}
		if !validStatus(entity.ProductStatuses, string(status)) {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("productos línea %d: estado %q", line, status))
			continue
		}

		seller, ok := sellers[email]
		if !ok {
			name := row["seller_name"]
			if name == "" {
				name = email
			}
			seller = &entity.User{ID: stableID("user", email), Name: name, Email: email, Role: entity.RoleSeller, RoleSelected: true}
			sellers[email] = seller
			cat.Users = append(cat.Users, seller)
		}
		cat.Products = append(cat.Products, &entity.Product{
			ID:          stableID("product", email+"/"+row["name"]),
			SellerID:    seller.ID,
			SellerName:  seller.Name,
			Name:        row["name"],
			Category:    strings.ToLower(row["category"]),
			Description: row["description"],
			Price:       price.Round(2),
			Stock:       stock,
			Status:      status,
		})
	}
	return nil
}

// ParseOrders agrupa las líneas por order_ref. Cada pedido debe pasar entity.Order.Validate;
// si trae total declarado, tiene que coincidir con la suma de las líneas.
func ParseOrders(r io.Reader, cat *Catalog) error {
	rows, err := readRows(r, "order_ref", "buyer_email", "product_name", "quantity")
	if err != nil {
		return err
	}
	products := make(map[string]*entity.Product, len(cat.Products))
	for _, p := range cat.Products {
		products[strings.ToLower(p.Name)] = p
	}
	users := make(map[string]*entity.User, len(cat.Users))
	for _, u := range cat.Users {
		users[strings.ToLower(u.Email)] = u
	}

	orders := make(map[string]*entity.Order)
	declared := make(map[string]string)
	bad := make(map[string]string)
	var refs []string
	for i, row := range rows {
		ref := row["order_ref"]
		if ref == "" {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("pedidos línea %d: order_ref vacío", i+2))
			continue
		}
		if _, seen := bad[ref]; seen {
			continue
		}
		p, ok := products[strings.ToLower(row["product_name"])]
		if !ok {
			bad[ref] = fmt.Sprintf("producto %q desconocido", row["product_name"])
			continue
		}
		qty, err := strconv.Atoi(row["quantity"])
		if err != nil {
			bad[ref] = fmt.Sprintf("cantidad %q inválida", row["quantity"])
			continue
		}
		email := strings.ToLower(row["buyer_email"])
		buyer, ok := users[email]
		if !ok {
			name := row["buyer_name"]
			if name == "" {
				name = email
			}
			buyer = &entity.User{ID: stableID("user", email), Name: name, Email: email, Role: entity.RoleBuyer, RoleSelected: true}
			users[email] = buyer
			cat.Users = append(cat.Users, buyer)
		}

		o, ok := orders[ref]
		if !ok {
			status := entity.OrderStatus(strings.ToLower(row["status"]))
			if status == "" {
				status = entity.OrderPending
			}
			o = &entity.Order{ID: stableID("order", ref), BuyerID: buyer.ID, SellerID: p.SellerID, Status: status}
			orders[ref] = o
			refs = append(refs, ref)
		}
		if o.SellerID != p.SellerID {
			bad[ref] = "mezcla productos de distintos vendedores"
			continue
		}
		if o.BuyerID != buyer.ID {
			bad[ref] = "mezcla compradores"
			continue
		}
		o.Items = append(o.Items, entity.OrderItem{
			ID:        stableID("order_item", fmt.Sprintf("%s/%d", ref, len(o.Items))),
			OrderID:   o.ID,
			ProductID: p.ID,
			Quantity:  qty,
			Price:     p.Price,
		})
		if t := row["total"]; t != "" {
			declared[ref] = t
		}
	}

	sort.Strings(refs)
	for _, ref := range refs {
		o := orders[ref]
		if reason, ok := bad[ref]; ok {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("pedido %s: %s", ref, reason))
			continue
		}
		o.Total = o.ItemsTotal()
		if t, ok := declared[ref]; ok {
			total, err := decimal.NewFromString(t)
			if err != nil {
				cat.Skipped = append(cat.Skipped, fmt.Sprintf("pedido %s: total %q inválido", ref, t))
				continue
			}
			o.Total = total
		}
		if err := o.Validate(); err != nil {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("pedido %s: %v", ref, err))
			continue
		}
		cat.Orders = append(cat.Orders, o)
	}
	return nil
}

func validStatus(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// WriteSQL escribe el script idempotente (ON CONFLICT DO NOTHING).
func WriteSQL(w io.Writer, cat *Catalog) error {
	var b strings.Builder
	b.WriteString("-- Datos iniciales del marketplace. Generado por cmd/seed.\n")
	b.WriteString("BEGIN;\n\n")

	if len(cat.Users) > 0 {
		b.WriteString("INSERT INTO users (id, name, email, password_hash, role, role_selected) VALUES\n")
		for i, u := range cat.Users {
			hash := "NULL"
			if u.PasswordHash != nil {
				hash = quote(*u.PasswordHash)
			}
			fmt.Fprintf(&b, "  (%s, %s, %s, %s, %s, %t)%s\n",
				quote(u.ID), quote(u.Name), quote(u.Email), hash, quote(u.Role), u.RoleSelected, sep(i, len(cat.Users)))
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n\n")
	}
	if len(cat.Products) > 0 {
		b.WriteString("INSERT INTO products (id, seller_id, name, category, description, price, stock, status) VALUES\n")
		for i, p := range cat.Products {
			fmt.Fprintf(&b, "  (%s, %s, %s, %s, %s, %s, %d, %s)%s\n",
				quote(p.ID), quote(p.SellerID), quote(p.Name), quote(p.Category), quote(p.Description),
				p.Price.StringFixed(2), p.Stock, quote(string(p.Status)), sep(i, len(cat.Products)))
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n\n")
	}
	for _, o := range cat.Orders {
		fmt.Fprintf(&b, "INSERT INTO orders (id, buyer_id, seller_id, status, total) VALUES (%s, %s, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			quote(o.ID), quote(o.BuyerID), quote(o.SellerID), quote(string(o.Status)), o.Total.StringFixed(2))
		for _, it := range o.Items {
			fmt.Fprintf(&b, "INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES (%s, %s, %s, %d, %s) ON CONFLICT DO NOTHING;\n",
				quote(it.ID), quote(o.ID), quote(it.ProductID), it.Quantity, it.Price.StringFixed(2))
		}
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
