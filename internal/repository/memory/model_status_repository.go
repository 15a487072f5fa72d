package memory

import (
	"time"

	"staystrong-chat-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

const modelStatusKey = "model_status"

// ModelStatusRepository keeps the last backend probe so /debug/model does not hit the
// backend on every call.
type ModelStatusRepository struct {
	cache *cache.Cache
}

func NewModelStatusRepository(ttl time.Duration) *ModelStatusRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ModelStatusRepository{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *ModelStatusRepository) Save(status *dto.ModelStatusResponse) {
	r.cache.Set(modelStatusKey, status, cache.DefaultExpiration)
}

func (r *ModelStatusRepository) Get() (*dto.ModelStatusResponse, bool) {
	if x, found := r.cache.Get(modelStatusKey); found {
		return x.(*dto.ModelStatusResponse), true
	}
	return nil, false
}

func (r *ModelStatusRepository) Delete() {
	r.cache.Delete(modelStatusKey)
}
