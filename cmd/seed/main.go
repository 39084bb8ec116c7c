// seed genera un script SQL con vendedores, productos y pedidos de ejemplo a partir de CSV.
//
// Uso:
//
//	go run ./cmd/seed -products productos.csv [-orders pedidos.csv] [-encoding auto|utf8|latin1] \
//	    [-admin-email admin@tienda.com -admin-password secreto] [-out seed.sql]
//
// Columnas de productos: seller_email, seller_name, name, category, description, price, stock, status.
// Columnas de pedidos: order_ref, buyer_email, buyer_name, product_name, quantity, total, status.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

func main() {
	productsPath := flag.String("products", "", "CSV de productos (requerido)")
	ordersPath := flag.String("orders", "", "CSV de pedidos")
	encoding := flag.String("encoding", "auto", "auto | utf8 | latin1")
	adminEmail := flag.String("admin-email", "", "crea una cuenta admin con este email")
	adminPassword := flag.String("admin-password", "", "contraseña de la cuenta admin (mínimo 8)")
	outPath := flag.String("out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info", Service: "seed"})
	if *productsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cat := &Catalog{}
	if *adminEmail != "" {
		admin, err := adminUser(*adminEmail, *adminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("cuenta admin")
		}
		cat.Users = append(cat.Users, admin)
	}

	if err := parseFile(*productsPath, *encoding, cat, ParseProducts); err != nil {
		log.Fatal().Err(err).Str("file", *productsPath).Msg("productos")
	}
	if *ordersPath != "" {
		if err := parseFile(*ordersPath, *encoding, cat, ParseOrders); err != nil {
			log.Fatal().Err(err).Str("file", *ordersPath).Msg("pedidos")
		}
	}
	for _, reason := range cat.Skipped {
		log.Warn().Msg(reason)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal().Err(err).Msg("crear archivo de salida")
		}
		defer f.Close()
		out = f
	}
	if err := WriteSQL(out, cat); err != nil {
		log.Fatal().Err(err).Msg("escribir SQL")
	}
	log.Info().
		Int("users", len(cat.Users)).
		Int("products", len(cat.Products)).
		Int("orders", len(cat.Orders)).
		Int("skipped", len(cat.Skipped)).
		Msg("seed generado")
}

func parseFile(path, encoding string, cat *Catalog, parse func(io.Reader, *Catalog) error) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data, err := decode(raw, encoding)
	if err != nil {
		return err
	}
	return parse(bytes.NewReader(data), cat)
}

func adminUser(email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, fmt.Errorf("admin-password debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	h := string(hash)
	return &entity.User{
		ID:           stableID("user", email),
		Name:         "Administrador",
		Email:        email,
		PasswordHash: &h,
		Role:         entity.RoleAdmin,
		RoleSelected: true,
	}, nil
}
