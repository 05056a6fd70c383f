package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	registryhttpmapper "github.com/Apurer/order-registry/internal/domains/registry/adapters/http/mapper"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
	"github.com/Apurer/order-registry/internal/domains/registry/ports"
	apierrors "github.com/Apurer/order-registry/internal/shared/errors"
)

// RegistryAPI wires HTTP transport with the registry service.
type RegistryAPI struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

// NewRegistryAPI creates a RegistryAPI backed by the provided service.
func NewRegistryAPI(service ports.Service) *RegistryAPI {
	return &RegistryAPI{service: service, responder: newResponder()}
}

// Get /api/v1/persons
// Lists customers matching keyword, tag or exact phone
func (api *RegistryAPI) ListPersons(c *gin.Context) {
	phone := c.Query("phone")
	filter := types.PersonFilter{Keywords: c.QueryArray("keyword"), Tag: c.Query("tag"), Phone: phone}
	persons, err := api.service.SearchPersons(c.Request.Context(), filter)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if phone != "" && len(persons) == 0 {
		api.respondError(c, fmt.Errorf("%w: phone %s", customers.ErrPersonNotFound, phone))
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromPersons(persons))
}

// Post /api/v1/persons
// Adds a customer
func (api *RegistryAPI) AddPerson(c *gin.Context) {
	var payload registryhttpmapper.Person
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	person, err := api.service.AddPerson(c.Request.Context(), registryhttpmapper.ToPersonInput(payload))
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registryhttpmapper.FromPerson(person))
}

// Put /api/v1/persons/:name
// Replaces a customer; orders referencing the old record follow the change
func (api *RegistryAPI) EditPerson(c *gin.Context) {
	var payload registryhttpmapper.Person
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	input := types.EditPersonInput{Target: c.Param("name"), Person: registryhttpmapper.ToPersonInput(payload)}
	person, err := api.service.EditPerson(c.Request.Context(), input)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromPerson(person))
}

// Delete /api/v1/persons/:name
func (api *RegistryAPI) DeletePerson(c *gin.Context) {
	if err := api.service.DeletePerson(c.Request.Context(), c.Param("name")); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/v1/products
func (api *RegistryAPI) ListProducts(c *gin.Context) {
	products, err := api.service.SearchProducts(c.Request.Context(), types.ProductFilter{Keywords: c.QueryArray("keyword")})
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProducts(products))
}

// Post /api/v1/products
func (api *RegistryAPI) AddProduct(c *gin.Context) {
	var payload registryhttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product, err := api.service.AddProduct(c.Request.Context(), registryhttpmapper.ToProductInput(payload))
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registryhttpmapper.FromProduct(product))
}

// Put /api/v1/products/:name
func (api *RegistryAPI) EditProduct(c *gin.Context) {
	var payload registryhttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	input := types.EditProductInput{Target: c.Param("name"), Product: registryhttpmapper.ToProductInput(payload)}
	product, err := api.service.EditProduct(c.Request.Context(), input)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProduct(product))
}

// Delete /api/v1/products/:name
// Existing orders keep their own copy of the product
func (api *RegistryAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), c.Param("name")); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/v1/orders
// Lists orders matching the query; total is the size of the whole list
func (api *RegistryAPI) ListOrders(c *gin.Context) {
	filter := types.OrderFilter{
		Stage:        c.Query("stage"),
		CustomerName: c.Query("customer"),
		Product:      c.Query("product"),
		UrgentOnly:   c.Query("urgent") == "true",
	}
	listing, err := api.service.SearchOrders(c.Request.Context(), filter)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromListing(listing))
}

// Post /api/v1/orders
func (api *RegistryAPI) CreateOrder(c *gin.Context) {
	var payload registryhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), registryhttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registryhttpmapper.FromProjection(order))
}

// Get /api/v1/orders/:orderId
func (api *RegistryAPI) GetOrder(c *gin.Context) {
	id, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProjection(order))
}

// Delete /api/v1/orders/:orderId
func (api *RegistryAPI) DeleteOrder(c *gin.Context) {
	id, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /api/v1/orders/:orderId/items
// Sets the quantity of one product; zero removes the line
func (api *RegistryAPI) EditOrderItem(c *gin.Context) {
	id, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload registryhttpmapper.OrderItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	input := types.EditOrderInput{OrderID: id, Product: payload.Product, Quantity: payload.Quantity}
	order, err := api.service.EditOrder(c.Request.Context(), input)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProjection(order))
}

// Put /api/v1/orders/:orderId/deadline
func (api *RegistryAPI) SetOrderDeadline(c *gin.Context) {
	id, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload registryhttpmapper.SetDeadline
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.SetOrderDeadline(c.Request.Context(), types.SetDeadlineInput{OrderID: id, Deadline: payload.Deadline})
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProjection(order))
}

// Post /api/v1/orders/:orderId/advance
// Moves the order to its next stage
func (api *RegistryAPI) AdvanceOrderStage(c *gin.Context) {
	id, ok := api.parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.AdvanceOrderStage(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registryhttpmapper.FromProjection(order))
}

// Delete /api/v1/completed-orders
func (api *RegistryAPI) ClearCompletedOrders(c *gin.Context) {
	removed, err := api.service.ClearCompletedOrders(c.Request.Context())
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Post /api/v1/completed-orders/archive
// Appends completed orders to the archive file, then removes them
func (api *RegistryAPI) ArchiveCompletedOrders(c *gin.Context) {
	archived, err := api.service.ArchiveCompletedOrders(c.Request.Context())
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": archived})
}

// Post /api/v1/snapshot
// Writes the current registry contents to the configured store
func (api *RegistryAPI) SaveSnapshot(c *gin.Context) {
	if err := api.service.Save(c.Request.Context()); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *RegistryAPI) parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		api.responder.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
