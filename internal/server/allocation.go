package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/smallbiznis/motorpool/internal/allocation/domain"
)

const dateLayout = "2006-01-02"

type createAllocationRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required"`
	VehicleID      string `json:"vehicle_id" binding:"required"`
	AllocationDate string `json:"allocation_date" binding:"required"`
}

// updateAllocationRequest requires a date on every update; the vehicle is
// only overwritten when present in the payload.
type updateAllocationRequest struct {
	VehicleID      *string `json:"vehicle_id"`
	AllocationDate string  `json:"allocation_date" binding:"required"`
}

type allocationResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	VehicleID      string `json:"vehicle_id"`
	AllocationDate string `json:"allocation_date"`
}

type allocationHistoryResponse struct {
	Allocations []allocationResponse `json:"allocations"`
}

func toAllocationResponse(a allocationdomain.Allocation) allocationResponse {
	return allocationResponse{
		ID:             a.ID.Hex(),
		EmployeeID:     a.EmployeeID,
		VehicleID:      a.VehicleID,
		AllocationDate: a.AllocationDate.Format(dateLayout),
	}
}

func toAllocationResponses(allocations []allocationdomain.Allocation) []allocationResponse {
	out := make([]allocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, toAllocationResponse(a))
	}
	return out
}

func (s *Server) CreateAllocation(c *gin.Context) {
	var req createAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.AllocationDate))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.allocationSvc.Create(c.Request.Context(), allocationdomain.CreateAllocationRequest{
		EmployeeID:     strings.TrimSpace(req.EmployeeID),
		VehicleID:      strings.TrimSpace(req.VehicleID),
		AllocationDate: date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAllocationResponse(resp))
}

func (s *Server) ListAllocations(c *gin.Context) {
	resp, err := s.allocationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAllocationResponses(resp))
}

func (s *Server) GetAllocationByID(c *gin.Context) {
	resp, err := s.allocationSvc.GetByID(c.Request.Context(), allocationdomain.GetAllocationRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAllocationResponse(resp))
}

func (s *Server) UpdateAllocation(c *gin.Context) {
	var req updateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.AllocationDate))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.allocationSvc.Update(c.Request.Context(), allocationdomain.UpdateAllocationRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		VehicleID:      req.VehicleID,
		AllocationDate: date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAllocationResponse(resp))
}

func (s *Server) DeleteAllocation(c *gin.Context) {
	err := s.allocationSvc.Delete(c.Request.Context(), allocationdomain.DeleteAllocationRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Allocation deleted successfully."})
}

func (s *Server) ListAllocationHistory(c *gin.Context) {
	resp, err := s.allocationSvc.History(c.Request.Context(), allocationdomain.HistoryRequest{
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		VehicleID:  strings.TrimSpace(c.Query("vehicle_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocationHistoryResponse{Allocations: toAllocationResponses(resp)})
}
