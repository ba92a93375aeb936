package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// ListFavourites handles GET /api/favorites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	favourites, err := fc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list favourites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favourites})
}

// AddFavourite handles POST /api/favorites
// Adding an existing pair is not an error.
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	pair, ok := bindPair(c, true)
	if !ok {
		return
	}

	if err := fc.store.Add(c.Request.Context(), pair); err != nil {
		respondStoreError(c, err, "add favourite")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "favourite added", "pair": pair})
}

// RemoveFavourite handles DELETE /api/favorites
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	pair, ok := bindPair(c, true)
	if !ok {
		return
	}

	if err := fc.store.Remove(c.Request.Context(), pair); err != nil {
		respondStoreError(c, err, "remove favourite")
		return
	}
	respondSuccess(c, "favourite removed")
}

// ToggleFavourite handles POST /api/favorites/toggle
func (fc *FavouritesController) ToggleFavourite(c *gin.Context) {
	pair, ok := bindPair(c, true)
	if !ok {
		return
	}

	added, err := fc.store.Toggle(c.Request.Context(), pair)
	if err != nil {
		respondStoreError(c, err, "toggle favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pair": pair, "favorite": added})
}
