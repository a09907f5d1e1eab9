package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dom "TodoBoard/internal/domain"
	"TodoBoard/internal/dto"
	"TodoBoard/internal/service"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Register mounts the todo routes on api.
func (h *TodoHandler) Register(api *gin.RouterGroup) {
	api.POST("/todos", h.Create)
	api.GET("/todos", h.List)
	api.GET("/todos/summary", h.Summary)
	api.GET("/todos/due-today/count", h.CountDueToday)
	api.GET("/todos/:id", h.GetByID)
	api.PATCH("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
	api.POST("/todos/:id/toggle", h.Toggle)
	api.POST("/todos/:id/complete", h.Complete)
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, ok := dom.ParseTag(req.Tag)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag must be one of Work, Personal, Home, Health"})
		return
	}
	priority, ok := dom.ParsePriority(req.Priority)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be one of high, medium, low"})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate.In(h.location()),
		Tag:         tag,
		Priority:    priority,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(t))
}

// List godoc
// @Summary      List todos for a dashboard view
// @Description  Unknown filter values fall back to "all".
// @Tags         todos
// @Produce      json
// @Param        filter  query     string  false  "all | dueToday | completed"
// @Success      200     {object}  dto.ListTodosResponse
// @Failure      500     {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	filter, _ := dom.ParseFilter(c.Query("filter"))
	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Filter: string(filter), Items: todosToResponses(list)})
}

// CountDueToday godoc
// @Summary      Count open todos due today
// @Tags         todos
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/due-today/count [get]
func (h *TodoHandler) CountDueToday(c *gin.Context) {
	n, err := h.svc.CountDueToday(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// Summary godoc
// @Summary      Dashboard counters
// @Tags         todos
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/summary [get]
func (h *TodoHandler) Summary(c *gin.Context) {
	s, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{
		Total:     s.Total,
		DueToday:  s.DueToday,
		Completed: s.Completed,
		Overdue:   s.Overdue,
	})
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Update godoc
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Partial update"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Done:        req.Done,
	}
	if req.DueDate != nil {
		if req.DueDate.IsSet() {
			in.DueDate = req.DueDate.In(h.location())
		} else {
			in.ClearDueDate = true
		}
	}
	if req.Tag != nil {
		tag, ok := dom.ParseTag(*req.Tag)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tag must be one of Work, Personal, Home, Health"})
			return
		}
		in.Tag = &tag
	}
	if req.Priority != nil {
		priority, ok := dom.ParsePriority(*req.Priority)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be one of high, medium, low"})
			return
		}
		in.Priority = &priority
	}

	t, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary      Flip the done flag of a todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/toggle [post]
func (h *TodoHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Complete godoc
// @Summary      Mark a todo as done
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/complete [post]
func (h *TodoHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.SetDone(c.Request.Context(), id, true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

func (h *TodoHandler) location() *time.Location {
	return h.svc.Now().Location()
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Done:        t.Done,
		DueDate:     t.DueDate,
		Tag:         string(t.Tag),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
