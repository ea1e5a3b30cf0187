package atms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"atmlocator/logger"
	"atmlocator/model"
	redisService "atmlocator/redis"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Handler serves the ATM list endpoint the map viewer loads from and posts to.
type Handler struct {
	db           *sql.DB
	redisClient  *redis.Client
	log          *logger.Logger
	validate     *validator.Validate
	cacheTTL     time.Duration
	writeKeyHash string
}

// NewHandler builds the handler. An empty writeKeyHash leaves POST /atms open.
func NewHandler(db *sql.DB, redisClient *redis.Client, log *logger.Logger, cacheTTL time.Duration, writeKeyHash string) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		db:           db,
		redisClient:  redisClient,
		log:          log,
		validate:     validator.New(),
		cacheTTL:     cacheTTL,
		writeKeyHash: writeKeyHash,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/atms", h.GetAtms).Methods(http.MethodGet)
	router.HandleFunc("/atms", h.AddAtm).Methods(http.MethodPost)
	router.HandleFunc("/atms/{id}", h.GetAtm).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

func (h *Handler) GetAtms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	cached, found, err := redisService.GetKey(ctx, h.redisClient, listCacheKey)
	if err != nil {
		h.log.CacheError("get", listCacheKey, err)
	} else if found {
		w.Write([]byte(cached))
		return
	}

	atms, err := ListAtms(ctx, h.db)
	if err != nil {
		h.log.DatabaseError("list_atms", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(atms)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := redisService.SetKey(ctx, h.redisClient, listCacheKey, body, h.cacheTTL); err != nil {
		h.log.CacheError("set", listCacheKey, err)
	}

	w.Write(body)
}

func (h *Handler) GetAtm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	atm, err := GetAtm(r.Context(), h.db, id)
	if errors.Is(err, ErrAtmNotFound) {
		writeMessage(w, http.StatusNotFound, "ATM does not exist")
		return
	}
	if err != nil {
		h.log.DatabaseError("get_atm", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(atm)
}

func (h *Handler) AddAtm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	if h.writeKeyHash != "" && !CheckWriteKey(r.Header.Get(writeKeyHeader), h.writeKeyHash) {
		writeMessage(w, http.StatusUnauthorized, "Invalid write key")
		return
	}

	var req model.CreateAtmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Id = strings.TrimSpace(req.Id)
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Id == "" {
		req.Id = uuid.NewString()
	}

	// take redis lock to avoid double clicking on the submit button
	lockKey := addLockKey(req.Name)
	locked, err := redisService.TakeLock(ctx, h.redisClient, lockKey)
	if err != nil {
		h.log.CacheError("lock", lockKey, err)
		http.Error(w, "error while taking redis lock", http.StatusInternalServerError)
		return
	}
	if !locked {
		writeMessage(w, http.StatusConflict, "ATM with same name is already being added")
		return
	}
	defer func() {
		// release even if the client went away mid-request
		if err := redisService.DeleteKey(context.WithoutCancel(ctx), h.redisClient, lockKey); err != nil {
			h.log.CacheError("unlock", lockKey, err)
		}
	}()

	atm := req.Atm()
	err = InsertAtm(ctx, h.db, atm)
	if errors.Is(err, ErrDuplicateAtm) {
		writeMessage(w, http.StatusConflict, fmt.Sprintf("ATM with id %s already exists", atm.Id))
		return
	}
	if err != nil {
		h.log.DatabaseError("add_atm", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := InvalidateListCache(ctx, h.redisClient); err != nil {
		h.log.CacheError("invalidate", listCacheKey, err)
	}

	h.log.Info("atm added", "id", atm.Id, "name", atm.Name)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(atm)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	if err := h.db.PingContext(ctx); err != nil {
		h.log.DatabaseError("ping", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "database unavailable"})
		return
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.CacheError("ping", "", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "redis unavailable"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// InvalidateListCache drops the cached GET /atms body.
func InvalidateListCache(ctx context.Context, redisClient *redis.Client) error {
	return redisService.DeleteKey(ctx, redisClient, listCacheKey)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
