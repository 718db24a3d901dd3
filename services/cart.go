package services

import (
	"encoding/json"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type cart struct {
	lines map[string]*CartLine
	order []string // urutan insert, untuk tampilan
}

func newCart() *cart {
	return &cart{lines: make(map[string]*CartLine)}
}

// CartService menyimpan cart per session (user) di memory dan me-mirror
// snapshot-nya ke tabel cart_snapshots setiap mutasi. Snapshot hanya
// best-effort: gagal simpan cuma di-log, cart di memory tetap source of truth.
type CartService struct {
	db    *gorm.DB
	mu    sync.Mutex
	carts map[uint]*cart
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:    db,
		carts: make(map[uint]*cart),
	}
}

// cartFor mengambil cart session; kalau belum ada di memory, muat verbatim
// dari snapshot tersimpan. Caller harus pegang cs.mu.
func (cs *CartService) cartFor(userID uint) *cart {
	if c, ok := cs.carts[userID]; ok {
		return c
	}

	c := newCart()
	var snap models.CartSnapshot
	if err := cs.db.Where("user_id = ?", userID).First(&snap).Error; err == nil {
		var lines []CartLine
		if err := json.Unmarshal([]byte(snap.Payload), &lines); err == nil {
			for i := range lines {
				line := lines[i]
				c.lines[line.ItemID] = &line
				c.order = append(c.order, line.ItemID)
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorLogger.Printf("cart: load snapshot for user %d failed: %v", userID, err)
	}

	cs.carts[userID] = c
	return c
}

// AddItem menambahkan item katalog ke cart: baris baru qty=1 atau qty+1
// untuk baris yang sudah ada. Item tanpa harga ditolak dengan ErrPriceMissing.
func (cs *CartService) AddItem(userID uint, item models.Menu) error {
	if item.Price == nil {
		return apperrors.ErrPriceMissing
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.cartFor(userID)
	if line, ok := c.lines[item.ID]; ok {
		line.Qty++
	} else {
		c.lines[item.ID] = &CartLine{
			ItemID: item.ID,
			Name:   item.Name,
			Price:  *item.Price,
			Qty:    1,
		}
		c.order = append(c.order, item.ID)
	}

	cs.persistSnapshot(userID, c)
	return nil
}

// SetQuantity men-set qty baris persis (bukan menambah). qty <= 0 menghapus
// baris; item yang tidak ada di cart = no-op.
func (cs *CartService) SetQuantity(userID uint, itemID string, qty int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.cartFor(userID)
	if _, ok := c.lines[itemID]; !ok {
		return
	}

	if qty <= 0 {
		c.remove(itemID)
	} else {
		c.lines[itemID].Qty = qty
	}

	cs.persistSnapshot(userID, c)
}

// RemoveItem menghapus baris tanpa syarat; no-op jika tidak ada.
func (cs *CartService) RemoveItem(userID uint, itemID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.cartFor(userID)
	if _, ok := c.lines[itemID]; !ok {
		return
	}
	c.remove(itemID)

	cs.persistSnapshot(userID, c)
}

// RemoveCharged menghapus baris yang sudah masuk order. Mutasi yang mendarat
// selagi charge berjalan tidak ikut hilang: qty yang bertambah hanya dikurangi
// sebesar qty yang ter-charge, baris baru dibiarkan utuh.
func (cs *CartService) RemoveCharged(userID uint, charged []CartLine) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.cartFor(userID)
	for _, ch := range charged {
		line, ok := c.lines[ch.ItemID]
		if !ok {
			continue
		}
		if line.Qty > ch.Qty {
			line.Qty -= ch.Qty
		} else {
			c.remove(ch.ItemID)
		}
	}
	cs.persistSnapshot(userID, c)
}

// Clear mengosongkan cart. Konfirmasi user diurus di boundary UI.
func (cs *CartService) Clear(userID uint) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := newCart()
	cs.carts[userID] = c
	cs.persistSnapshot(userID, c)
}

// Lines mengembalikan salinan baris cart dalam urutan insert.
func (cs *CartService) Lines(userID uint) []CartLine {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.cartFor(userID)
	return c.snapshot()
}

func (c *cart) remove(itemID string) {
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *cart) snapshot() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			lines = append(lines, *line)
		}
	}
	return lines
}

func (cs *CartService) persistSnapshot(userID uint, c *cart) {
	payload, err := json.Marshal(c.snapshot())
	if err != nil {
		utils.ErrorLogger.Printf("cart: marshal snapshot for user %d failed: %v", userID, err)
		return
	}

	snap := models.CartSnapshot{UserID: userID, Payload: string(payload)}
	err = cs.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		// best-effort mirror, jangan gagalkan mutasi cart
		utils.ErrorLogger.Printf("cart: persist snapshot for user %d failed: %v", userID, err)
	}
}
