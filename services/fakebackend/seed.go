package fakebackend

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mediakasir/apotekpos/services/dashboard"
	"github.com/mediakasir/apotekpos/services/pos"
)

// Seed fills a branch with a small pharmacy assortment for local use.
func (b *Backend) Seed(c context.Context, branchID string) error {
	products := []pos.Product{
		{ID: branchID + "-prd-1", Barcode: "8992858000017", Name: "Paracetamol 500mg", Category: "Obat Bebas", Unit: "strip", SellPrice: decimal.NewFromInt(5000), CurrentStock: 120, MinStock: 20},
		{ID: branchID + "-prd-2", Barcode: "8992858000024", Name: "Amoxicillin 500mg", Category: "Obat Keras", Unit: "strip", SellPrice: decimal.NewFromInt(12500), CurrentStock: 8, MinStock: 10},
		{ID: branchID + "-prd-3", Barcode: "8992858000031", Name: "Vitamin C 1000mg", Category: "Suplemen", Unit: "botol", SellPrice: decimal.NewFromInt(45000), CurrentStock: 30, MinStock: 5},
		{ID: branchID + "-prd-4", Barcode: "8992858000048", Name: "OBH Combi 100ml", Category: "Obat Bebas", Unit: "botol", SellPrice: decimal.NewFromInt(18000), CurrentStock: 0, MinStock: 5},
		{ID: branchID + "-prd-5", Barcode: "8992858000055", Name: "Masker Medis", Category: "Alat Kesehatan", Unit: "box", SellPrice: decimal.NewFromInt(25000), CurrentStock: 40, MinStock: 10},
	}
	for _, p := range products {
		err := b.AddProduct(c, branchID, p)
		if err != nil {
			return err
		}
	}

	today := b.nower.Now()
	batches := []dashboard.Batch{
		{ProductID: branchID + "-prd-2", ProductName: "Amoxicillin 500mg", BatchNumber: "AMX-001", ExpiryDate: today.AddDate(0, 0, -3).Format(time.DateOnly), CurrentQty: 4, InitialQty: 50, BuyPrice: decimal.NewFromInt(9000), BranchID: branchID},
		{ProductID: branchID + "-prd-1", ProductName: "Paracetamol 500mg", BatchNumber: "PCT-014", ExpiryDate: today.AddDate(0, 0, 14).Format(time.DateOnly), CurrentQty: 60, InitialQty: 100, BuyPrice: decimal.NewFromInt(3500), BranchID: branchID},
		{ProductID: branchID + "-prd-3", ProductName: "Vitamin C 1000mg", BatchNumber: "VTC-203", ExpiryDate: today.AddDate(1, 0, 0).Format(time.DateOnly), CurrentQty: 30, InitialQty: 30, BuyPrice: decimal.NewFromInt(32000), BranchID: branchID},
	}
	for _, batch := range batches {
		err := b.AddBatch(c, batch)
		if err != nil {
			return err
		}
	}
	return nil
}
