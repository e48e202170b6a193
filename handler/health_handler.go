package handler

import (
	"context"
	"log"
	"time"

	"keeper/services"
	"keeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	Mongo *mongo.Client
	Cache *services.RedisViewCache
}

func NewHealthHandler(client *mongo.Client, cache *services.RedisViewCache) *HealthHandler {
	return &HealthHandler{Mongo: client, Cache: cache}
}

// GetHealth reports store and cache reachability plus host load. The
// cache being down does not make the service unhealthy - it degrades to
// uncached reads.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	storeUp := h.Mongo != nil && h.Mongo.Ping(ctx, readpref.Primary()) == nil
	cacheUp := h.Cache.IsConnected()

	status := "ok"
	if !storeUp {
		status = "degraded"
	}

	payload := gin.H{
		"status": status,
		"store":  storeUp,
		"cache":  cacheUp,
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		payload["memory_used_percent"] = vm.UsedPercent
	} else {
		log.Printf("Error reading memory stats: %v", err)
	}
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		payload["cpu_percent"] = percentages[0]
	}

	if !storeUp {
		c.JSON(503, payload)
		return
	}
	utils.Success(c, payload)
}
