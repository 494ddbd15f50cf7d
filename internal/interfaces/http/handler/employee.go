package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/application/workforce"
)

// EmployeeHandler handles employee management HTTP requests
type EmployeeHandler struct {
	BaseHandler
	employeeService *workforce.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *workforce.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// Create godoc
// @Summary      Create employee
// @Description  Registers a new employee. The employee number is assigned
// @Description  automatically and an initial history entry is recorded.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body workforce.CreateEmployeeRequest true "Employee"
// @Success      201 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req workforce.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Employee created", employee)
}

// GetByID godoc
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", employee)
}

// GetByEmployeeNo godoc
// @Summary      Get employee by employee number
// @Tags         employees
// @Produce      json
// @Param        employeeNo path string true "Employee number"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/no/{employeeNo} [get]
func (h *EmployeeHandler) GetByEmployeeNo(c *gin.Context) {
	employee, err := h.employeeService.GetByEmployeeNo(c.Request.Context(), c.Param("employeeNo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", employee)
}

// List godoc
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search by name or employee number"
// @Param        branch_id query string false "Filter by branch"
// @Param        division_id query string false "Filter by division"
// @Param        position_id query string false "Filter by position"
// @Param        status query string false "Filter by status" Enums(active, on_leave, suspended, terminated)
// @Param        employment_type query string false "Filter by employment type" Enums(full_time, part_time, contract)
// @Success      200 {object} dto.Response{data=[]workforce.EmployeeResponse}
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter workforce.ListEmployeesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Update godoc
// @Summary      Update employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.UpdateEmployeeRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Employee updated", employee)
}

// UpdateSalary godoc
// @Summary      Update employee salary
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.UpdateSalaryRequest true "New salary"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/salary [put]
func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.UpdateSalary(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Salary updated", employee)
}

// AddDocument godoc
// @Summary      Attach document metadata
// @Description  Registers a document for the employee and returns an upload
// @Description  URL for the file contents.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.AddDocumentRequest true "Document metadata"
// @Success      201 {object} dto.Response{data=workforce.AddDocumentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/documents [post]
func (h *EmployeeHandler) AddDocument(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	result, err := h.employeeService.AddDocument(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Document added", result)
}

// RemoveDocument godoc
// @Summary      Remove document
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        documentId path string true "Document ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/documents/{documentId} [delete]
func (h *EmployeeHandler) RemoveDocument(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	documentID, ok := h.parseIDParam(c, "documentId")
	if !ok {
		return
	}
	actorID, _ := getUserID(c)

	if err := h.employeeService.RemoveDocument(c.Request.Context(), id, documentID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DocumentDownloadURL godoc
// @Summary      Get document download URL
// @Description  Returns a presigned URL valid for a limited time
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        documentId path string true "Document ID"
// @Success      200 {object} dto.Response{data=workforce.DocumentURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/documents/{documentId}/url [get]
func (h *EmployeeHandler) DocumentDownloadURL(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	documentID, ok := h.parseIDParam(c, "documentId")
	if !ok {
		return
	}

	result, err := h.employeeService.DocumentDownloadURL(c.Request.Context(), id, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", result)
}

// AddSkill godoc
// @Summary      Add skill
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.AddSkillRequest true "Skill"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/skills [post]
func (h *EmployeeHandler) AddSkill(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.AddSkill(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Skill added", employee)
}

// AddTraining godoc
// @Summary      Add training record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.AddTrainingRequest true "Training"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/trainings [post]
func (h *EmployeeHandler) AddTraining(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.AddTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.AddTraining(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Training added", employee)
}

// AddContract godoc
// @Summary      Add contract
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.AddContractRequest true "Contract"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/contracts [post]
func (h *EmployeeHandler) AddContract(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.AddContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.AddContract(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Contract added", employee)
}

// ChangeStatus godoc
// @Summary      Change employee status
// @Description  Transitions between active, on_leave, suspended and terminated.
// @Description  Termination is final.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.ChangeEmployeeStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/status [put]
func (h *EmployeeHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.ChangeEmployeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Status changed", employee)
}

// Transfer godoc
// @Summary      Transfer employee
// @Description  Moves the employee to a new branch, division and/or position,
// @Description  updating position headcounts and recording history.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body workforce.TransferEmployeeRequest true "Transfer target"
// @Success      200 {object} dto.Response{data=workforce.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/transfer [post]
func (h *EmployeeHandler) Transfer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workforce.TransferEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	employee, err := h.employeeService.Transfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Employee transferred", employee)
}

// GetHistory godoc
// @Summary      Employee change history
// @Description  Append-only audit trail of every mutation to the employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        action query string false "Filter by action"
// @Success      200 {object} dto.Response{data=[]workforce.HistoryResponse}
// @Security     BearerAuth
// @Router       /employees/{id}/history [get]
func (h *EmployeeHandler) GetHistory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var filter workforce.ListHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.employeeService.GetHistory(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Stats godoc
// @Summary      Workforce statistics
// @Description  Aggregate counts by status, employment type and branch
// @Tags         employees
// @Produce      json
// @Success      200 {object} dto.Response{data=workforce.StatsResponse}
// @Security     BearerAuth
// @Router       /employees/stats [get]
func (h *EmployeeHandler) Stats(c *gin.Context) {
	stats, err := h.employeeService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", stats)
}

// Delete godoc
// @Summary      Delete employee
// @Description  Only terminated employees without a linked user account can be deleted
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
