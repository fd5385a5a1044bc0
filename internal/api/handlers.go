package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ambusos/ambusos-api/internal/domain"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// Catalogs

func (s *Server) handleCatalogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"catalogos": s.catalog.Vocabularies()})
}

// Auth

func (s *Server) handleSignIn(c *gin.Context) {
	var in domain.PersonnelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.personnel.Register(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.project.Person(*p))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"contrasena" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, ok, err := s.personnel.VerifyCredentials(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, s.project.Person(*p))
}

// Roles

type roleRequest struct {
	Name string `json:"nombre" binding:"required"`
}

func (s *Server) handleCreateRole(c *gin.Context) {
	var in roleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := s.catalog.CreateRole(c.Request.Context(), in.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (s *Server) handleListRoles(c *gin.Context) {
	roles, err := s.catalog.ListRoles(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (s *Server) handleGetRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	role, err := s.catalog.GetRole(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (s *Server) handleDeleteRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.catalog.DeleteRole(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Personnel

func (s *Server) handleListPersonnel(c *gin.Context) {
	people, err := s.personnel.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.People(people))
}

func (s *Server) handleGetPersonnel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := s.personnel.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Person(*p))
}

func (s *Server) handleUpdatePersonnel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in domain.PersonnelUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.personnel.Update(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Person(*p))
}

func (s *Server) handleDeletePersonnel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.personnel.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hospitals

func (s *Server) handleCreateHospital(c *gin.Context) {
	var in domain.HospitalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := s.fleet.CreateHospital(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (s *Server) handleListHospitals(c *gin.Context) {
	hospitals, err := s.fleet.ListHospitals(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

func (s *Server) handleGetHospital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	h, err := s.fleet.GetHospital(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (s *Server) handleUpdateHospital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in domain.HospitalUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := s.fleet.UpdateHospital(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (s *Server) handleDeleteHospital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.fleet.DeleteHospital(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ambulances

func (s *Server) handleCreateAmbulance(c *gin.Context) {
	var in domain.AmbulanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := s.fleet.CreateAmbulance(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	view, err := s.project.Ambulance(c.Request.Context(), *a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) handleListAmbulances(c *gin.Context) {
	ambulances, err := s.fleet.ListAmbulances(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views, err := s.project.Ambulances(c.Request.Context(), ambulances)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetAmbulance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := s.fleet.GetAmbulance(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	view, err := s.project.Ambulance(c.Request.Context(), *a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleUpdateAmbulance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	var in domain.AmbulanceUpdate
	if err := json.Unmarshal(body, &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// An explicit "hospital_id": null in the payload detaches the ambulance;
	// omitting the key leaves the attachment alone.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err == nil {
		if _, present := keys["hospital_id"]; present {
			in.SetHospital = true
		}
	}

	a, err := s.fleet.UpdateAmbulance(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	view, err := s.project.Ambulance(c.Request.Context(), *a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleDeleteAmbulance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.fleet.DeleteAmbulance(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Assignments

type assignRequest struct {
	PersonnelID int64 `json:"personal_id" binding:"required"`
	AmbulanceID int64 `json:"ambulancia_id" binding:"required"`
}

func (s *Server) handleAssign(c *gin.Context) {
	var in assignRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := s.assignments.Assign(c.Request.Context(), in.PersonnelID, in.AmbulanceID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleListAssignments(c *gin.Context) {
	details, err := s.assignments.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Assignments(details))
}

func (s *Server) handleGetAssignment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := s.assignments.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Assignment(*d))
}

func (s *Server) handleUnassign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.assignments.Unassign(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Accidents

func (s *Server) handleReportAccident(c *gin.Context) {
	var in domain.AccidentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.accidents.Report(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.project.Accident(*r))
}

func (s *Server) handleListAccidents(c *gin.Context) {
	reports, err := s.accidents.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Accidents(reports))
}

func (s *Server) handleGetAccident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := s.accidents.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Accident(*r))
}

func (s *Server) handleUpdateAccident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in domain.AccidentUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.accidents.Update(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Accident(*r))
}

func (s *Server) handleDeleteAccident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.accidents.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAccidentTrips(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	trips, err := s.accidents.Trips(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Trips(trips))
}

// Trips

func (s *Server) handleCreateTrip(c *gin.Context) {
	var in domain.TripInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.accidents.AddTrip(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.project.Trip(*t))
}

func (s *Server) handleListTrips(c *gin.Context) {
	trips, err := s.accidents.ListTrips(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Trips(trips))
}

func (s *Server) handleGetTrip(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := s.accidents.GetTrip(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.project.Trip(*t))
}

func (s *Server) handleDeleteTrip(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.accidents.DeleteTrip(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
