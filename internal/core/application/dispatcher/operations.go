package dispatcher

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/commands"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/queries"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
)

// Handlers are the use cases the agent can reach.
type Handlers struct {
	AddItem         commands.AddItemCommandHandler
	RemoveItem      commands.RemoveItemCommandHandler
	ModifyItem      commands.ModifyItemCommandHandler
	SetSizeQuantity commands.SetSizeQuantityCommandHandler
	SaveOrderType   commands.SaveOrderTypeCommandHandler
	Contact         commands.ContactCommandHandler
	Checkout        commands.CheckoutOrderCommandHandler
	Finalize        commands.FinalizeOrderCommandHandler
	Discard         commands.DiscardOrderCommandHandler

	Session     queries.SessionQueryHandler
	OrderStatus queries.OrderStatusQueryHandler
	MenuSummary queries.MenuSummaryQueryHandler
}

type noArgs struct{}

type addToCartArgs struct {
	Item         string   `json:"item"`
	Toppings     []string `json:"toppings"`
	Addons       []string `json:"addons"`
	Size         string   `json:"size"`
	Quantity     int      `json:"quantity"`
	CustomerName string   `json:"customer_name"`
	Address      string   `json:"address"`
}

type indexArgs struct {
	Index int `json:"index"`
}

type modifyCartItemArgs struct {
	Index    int       `json:"index"`
	Flavor   *string   `json:"flavor"`
	Toppings *[]string `json:"toppings"`
	Addons   *[]string `json:"addons"`
	Size     *string   `json:"size"`
	Quantity *int      `json:"quantity"`
}

type setSizeQuantityArgs struct {
	Index    *int    `json:"index"`
	Size     *string `json:"size"`
	Quantity *int    `json:"quantity"`
}

type orderTypeArgs struct {
	OrderType string `json:"order_type"`
}

type checkoutArgs struct {
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	OrderType string `json:"order_type"`
	PromoCode string `json:"promo_code"`
}

type orderNumberArgs struct {
	OrderNumber string `json:"order_number"`
}

type orderStatusArgs struct {
	Phone       string `json:"phone"`
	OrderNumber string `json:"order_number"`
}

type addressArgs struct {
	Address string `json:"address"`
}

type phoneArgs struct {
	Phone string `json:"phone"`
}

type confirmArgs struct {
	Confirmed bool `json:"confirmed"`
}

type textArgs struct {
	Text string `json:"text"`
}

type menuSummaryArgs struct {
	Refresh bool `json:"refresh"`
}

func stringList() *openapi3.Schema {
	return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
}

func index() *openapi3.Schema {
	return openapi3.NewIntegerSchema().WithMin(0)
}

func positive() *openapi3.Schema {
	return openapi3.NewIntegerSchema().WithMin(1)
}

// lenientQuantity accepts any integer; add_to_cart reads anything below one
// as one.
func lenientQuantity() *openapi3.Schema {
	return described(openapi3.NewIntegerSchema(), "Number of pizzas; values below 1 count as 1.")
}

func described(s *openapi3.Schema, description string) *openapi3.Schema {
	s.Description = description
	return s
}

func callSID() *openapi3.Schema {
	return described(openapi3.NewStringSchema(),
		"Optional call SID to bind this function call to a specific phone call.")
}

// Operations wires the agent's function set to h.
//
//nolint:funlen,maintidx // one registry entry per function
func Operations(h Handlers) []Operation {
	return []Operation{
		{
			Name:        "menu_summary",
			Description: "Give a short human-style menu overview (pizzas, toppings, sizes, add-ons).",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"refresh": described(openapi3.NewBoolSchema(), "Refetch the menu before answering."),
			}),
			Handler: Bind(func(ctx context.Context, _ string, in menuSummaryArgs) (Result, error) {
				resp, err := h.MenuSummary.Handle(ctx, queries.NewMenuSummaryQuery(in.Refresh))
				if err != nil {
					return nil, err
				}
				return Result{
					"ok":       true,
					"summary":  resp.Summary,
					"flavors":  resp.Flavors,
					"toppings": resp.Toppings,
					"addons":   resp.Addons,
					"sizes":    resp.Sizes,
					"prices":   resp.Prices,
				}, nil
			}),
		},
		{
			Name:        "add_to_cart",
			Description: "Add a pizza to the cart (standard size unless specified).",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"item":          described(openapi3.NewStringSchema(), "Pizza flavor (alias: flavor)."),
				"toppings":      stringList(),
				"addons":        stringList(),
				"size":          described(openapi3.NewStringSchema(), "Small | Medium | Large"),
				"quantity":      lenientQuantity(),
				"customer_name": openapi3.NewStringSchema(),
				"address":       openapi3.NewStringSchema(),
				"call_sid":      callSID(),
			}, "item"),
			Aliases:       map[string]string{"flavor": "item"},
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in addToCartArgs) (Result, error) {
				cmd, err := commands.NewAddItemCommand(
					sid, in.Item, in.Toppings, in.Addons, in.Size, in.Quantity, in.CustomerName, in.Address,
				)
				if err != nil {
					return nil, err
				}
				res, err := h.AddItem.Handle(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "cart_count": res.CartCount, "item": res.Item}, nil
			}),
		},
		{
			Name:          "remove_from_cart",
			Description:   "Remove a pizza by index (0-based).",
			Parameters:    objectSchema(map[string]*openapi3.Schema{"index": index(), "call_sid": callSID()}, "index"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in indexArgs) (Result, error) {
				res, err := h.RemoveItem.Handle(ctx, commands.NewRemoveItemCommand(sid, in.Index))
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "removed": res.Item, "cart_count": res.CartCount}, nil
			}),
		},
		{
			Name:        "modify_cart_item",
			Description: "Modify an existing pizza in the cart by index.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"index":    index(),
				"flavor":   openapi3.NewStringSchema(),
				"toppings": stringList(),
				"addons":   stringList(),
				"size":     openapi3.NewStringSchema(),
				"quantity": positive(),
				"call_sid": callSID(),
			}, "index"),
			Aliases:       map[string]string{"item": "flavor"},
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in modifyCartItemArgs) (Result, error) {
				changes := commands.ItemChanges{Flavor: in.Flavor, Size: in.Size, Quantity: in.Quantity}
				if in.Toppings != nil {
					changes.Toppings = nonNilList(*in.Toppings)
				}
				if in.Addons != nil {
					changes.Addons = nonNilList(*in.Addons)
				}
				res, err := h.ModifyItem.Handle(ctx, commands.NewModifyItemCommand(sid, in.Index, changes))
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "item": res.Item, "cart_count": res.CartCount}, nil
			}),
		},
		{
			Name:        "set_size_quantity",
			Description: "Update size and/or quantity for last item or by index.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"index":    index(),
				"size":     openapi3.NewStringSchema(),
				"quantity": positive(),
				"call_sid": callSID(),
			}),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in setSizeQuantityArgs) (Result, error) {
				cmd := commands.NewSetSizeQuantityCommand(sid, in.Index, in.Size, in.Quantity)
				res, err := h.SetSizeQuantity.Handle(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "item": res.Item, "cart_count": res.CartCount}, nil
			}),
		},
		{
			Name:          "get_cart",
			Description:   "Get current cart contents to read back to customer.",
			Parameters:    objectSchema(map[string]*openapi3.Schema{"call_sid": callSID()}),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, _ noArgs) (Result, error) {
				resp, err := h.Session.GetCart(ctx, queries.NewGetCartQuery(sid))
				if err != nil {
					return nil, err
				}
				return Result{
					"ok":             true,
					"items":          resp.Items,
					"count":          resp.Count,
					"total_quantity": resp.TotalQuantity,
				}, nil
			}),
		},
		{
			Name:        "save_order_type",
			Description: "Save whether the customer picks the order up or wants it delivered.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"order_type": described(openapi3.NewStringSchema(), "pickup | delivery"),
				"call_sid":   callSID(),
			}, "order_type"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in orderTypeArgs) (Result, error) {
				cmd, err := commands.NewSaveOrderTypeCommand(sid, in.OrderType)
				if err != nil {
					return nil, err
				}
				saved, err := h.SaveOrderType.Handle(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "order_type": saved.String()}, nil
			}),
		},
		{
			Name:          "get_order_type",
			Description:   "Return the saved pickup/delivery choice, if any.",
			Parameters:    objectSchema(map[string]*openapi3.Schema{"call_sid": callSID()}),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, _ noArgs) (Result, error) {
				resp, err := h.Session.GetOrderType(ctx, queries.NewGetOrderTypeQuery(sid))
				if err != nil {
					return nil, err
				}
				if resp.OrderType.IsZero() {
					return Result{"ok": true, "order_type": nil}, nil
				}
				return Result{"ok": true, "order_type": resp.OrderType.String(), "saved_at": resp.SavedAt.Unix()}, nil
			}),
		},
		{
			Name:        "checkout_order",
			Description: "Generate an order number and finalize the order from the current cart.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"phone":      openapi3.NewStringSchema(),
				"address":    described(openapi3.NewStringSchema(), "Delivery address (optional)."),
				"order_type": described(openapi3.NewStringSchema(), "pickup | delivery (optional)."),
				"promo_code": openapi3.NewStringSchema(),
				"call_sid":   callSID(),
			}),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in checkoutArgs) (Result, error) {
				cmd, err := commands.NewCheckoutOrderCommand(sid, in.Phone, in.Address, in.OrderType, in.PromoCode)
				if err != nil {
					return nil, err
				}
				view, err := h.Checkout.Handle(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return orderResult(view), nil
			}),
		},
		{
			Name:        "finalize_order",
			Description: "Commit a pending order by its number.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"order_number": openapi3.NewStringSchema(),
				"call_sid":     callSID(),
			}, "order_number"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in orderNumberArgs) (Result, error) {
				view, err := h.Finalize.Handle(ctx, commands.NewFinalizeOrderCommand(sid, in.OrderNumber))
				if err != nil {
					return nil, err
				}
				return orderResult(view), nil
			}),
		},
		{
			Name:        "discard_pending_order",
			Description: "Drop a pending order that was not finalized.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"order_number": openapi3.NewStringSchema(),
				"call_sid":     callSID(),
			}, "order_number"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in orderNumberArgs) (Result, error) {
				if err := h.Discard.Handle(ctx, commands.NewDiscardOrderCommand(sid, in.OrderNumber)); err != nil {
					return nil, err
				}
				return Result{"ok": true, "discarded": true}, nil
			}),
		},
		{
			Name:        "order_status",
			Description: "Look up order status by phone or order number.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"phone":        openapi3.NewStringSchema(),
				"order_number": openapi3.NewStringSchema(),
				"call_sid":     callSID(),
			}),
			Handler: Bind(func(ctx context.Context, _ string, in orderStatusArgs) (Result, error) {
				query, err := queries.NewOrderStatusQuery(in.Phone, in.OrderNumber)
				if err != nil {
					return nil, err
				}
				resp, err := h.OrderStatus.Handle(ctx, query)
				if err != nil {
					return nil, err
				}
				if !resp.Found {
					return Result{"ok": true, "found": false}, nil
				}
				return Result{"ok": true, "found": true, "order_number": resp.OrderNumber, "status": resp.Status}, nil
			}),
		},
		{
			Name:          "order_is_placed",
			Description:   "Return whether an order number has been generated in this call session.",
			Parameters:    objectSchema(map[string]*openapi3.Schema{"call_sid": callSID()}),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, _ noArgs) (Result, error) {
				resp, err := h.Session.OrderIsPlaced(ctx, queries.NewOrderIsPlacedQuery(sid))
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "placed": resp.Placed, "order_number": nullable(resp.OrderNumber)}, nil
			}),
		},
		{
			Name:        "save_address",
			Description: "Save the customer's delivery address (not confirmed).",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"address":  openapi3.NewStringSchema(),
				"call_sid": callSID(),
			}, "address"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in addressArgs) (Result, error) {
				cmd, err := commands.NewSaveAddressCommand(sid, in.Address, false)
				if err != nil {
					return nil, err
				}
				res, err := h.Contact.SaveAddress(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "address": res.Address}, nil
			}),
		},
		{
			Name:        "save_phone_number",
			Description: "Save the customer's phone number for pickup/delivery (not confirmed).",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"phone":    openapi3.NewStringSchema(),
				"call_sid": callSID(),
			}, "phone"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in phoneArgs) (Result, error) {
				cmd, err := commands.NewSavePhoneCommand(sid, in.Phone)
				if err != nil {
					return nil, err
				}
				res, err := h.Contact.SavePhone(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return Result{"ok": true, "phone": res.Phone}, nil
			}),
		},
		{
			Name:        "confirm_phone_number",
			Description: "Confirm (true) or reject (false) the previously provided phone number.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"confirmed": openapi3.NewBoolSchema(),
				"call_sid":  callSID(),
			}, "confirmed"),
			SessionScoped: true,
			Handler: Bind(func(ctx context.Context, sid string, in confirmArgs) (Result, error) {
				res, err := h.Contact.ConfirmPhone(ctx, commands.NewConfirmPhoneCommand(sid, in.Confirmed))
				if err != nil {
					return nil, err
				}
				return Result{"ok": res.Confirmed, "phone": nullable(res.Phone)}, nil
			}),
		},
		{
			Name:        "extract_phone_and_order",
			Description: "Extract phone and 4-digit order number from free text.",
			Parameters: objectSchema(map[string]*openapi3.Schema{
				"text":     openapi3.NewStringSchema(),
				"call_sid": callSID(),
			}, "text"),
			Handler: Bind(func(_ context.Context, _ string, in textArgs) (Result, error) {
				c := queries.NewExtractPhoneAndOrderQuery(in.Text).Handle()
				return Result{"ok": true, "phone": nullable(c.Phone.String()), "order_number": nullable(c.OrderNumber)}, nil
			}),
		},
		{
			Name:        "confirm_pending_to_cart",
			Description: "No-op in this build.",
			Parameters:  objectSchema(map[string]*openapi3.Schema{"call_sid": callSID()}),
			Handler: Bind(func(context.Context, string, noArgs) (Result, error) {
				return Result{"ok": true, "staged": false}, nil
			}),
		},
		{
			Name:        "clear_pending_item",
			Description: "No-op in this build.",
			Parameters:  objectSchema(map[string]*openapi3.Schema{"call_sid": callSID()}),
			Handler: Bind(func(context.Context, string, noArgs) (Result, error) {
				return Result{"ok": true, "cleared": true}, nil
			}),
		},
	}
}

// orderResult flattens an order view into the result, as the agent expects
// the order fields next to "ok".
func orderResult(v order.View) Result {
	r := Result{
		"ok":           true,
		"order_number": v.OrderNumber,
		"items":        v.Items,
		"phone":        v.Phone,
		"address":      v.Address,
		"order_type":   v.OrderType,
		"status":       v.Status,
		"created_at":   v.CreatedAt,
		"committed":    v.Committed,
		"pricing":      v.Pricing,
		"total":        v.Total,
	}
	if v.SavedAt != nil {
		r["saved_at"] = *v.SavedAt
	}
	if v.Charges != nil {
		r["charges"] = *v.Charges
	}
	if v.RecordID != "" {
		r["record_id"] = v.RecordID
	}
	if v.Warning != "" {
		r["warning"] = v.Warning
	}
	return r
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNilList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
