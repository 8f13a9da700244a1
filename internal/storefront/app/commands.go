package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/apiclient"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/checkout"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/guard"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/session"
)

type command struct {
	usage string
	help  string
	// args are the whitespace separated words after the command name; rest is
	// the raw remainder of the line.
	run func(ctx context.Context, args []string, rest string) error
}

func (a *App) commandTable() map[string]command {
	quit := command{usage: "quit", help: "leave the storefront", run: func(context.Context, []string, string) error { return ErrQuit }}

	return map[string]command{
		"help":     {usage: "help", help: "list commands", run: a.cmdHelp},
		"go":       {usage: "go <path>", help: "navigate, e.g. go /admin/orders", run: a.cmdGo},
		"products": {usage: "products [category]", help: "browse the catalog", run: a.cmdProducts},
		"product":  {usage: "product <id>", help: "show a product with its reviews", run: a.cmdProduct},
		"add":      {usage: "add <id>", help: "add a product to the cart", run: a.cmdAdd},
		"remove":   {usage: "remove <id>", help: "remove a product from the cart", run: a.cmdRemove},
		"qty":      {usage: "qty <id> <n>", help: "set a cart quantity (n >= 1)", run: a.cmdQuantity},
		"cart":     {usage: "cart", help: "show the cart", run: a.cmdCart},
		"clear":    {usage: "clear", help: "empty the cart", run: a.cmdClear},
		"checkout": {usage: "checkout <name> | <phone> | <address>", help: "place the order", run: a.cmdCheckout},
		"login":    {usage: "login <username> <password>", help: "sign in", run: a.cmdLogin},
		"register": {usage: "register <username> <password>", help: "create an account", run: a.cmdRegister},
		"logout":   {usage: "logout", help: "sign out", run: a.cmdLogout},
		"whoami":   {usage: "whoami", help: "show the signed-in user", run: a.cmdWhoami},
		"continue": {usage: "continue", help: "extend the session", run: a.cmdContinue},
		"session":  {usage: "session", help: "show session state", run: a.cmdSession},
		"password": {usage: "password <current> <new>", help: "change your password", run: a.cmdPassword},
		"orders":   {usage: "orders [all]", help: "your orders, or every order for admins", run: a.cmdOrders},
		"status":   {usage: "status <order-id> <status>", help: "update an order status (admin)", run: a.cmdStatus},
		"stats":    {usage: "stats", help: "dashboard totals (admin)", run: a.cmdStats},
		"review":   {usage: "review <product-id> <1-5> [comment]", help: "review a product", run: a.cmdReview},
		"upload":   {usage: "upload <id> <image-path>", help: "replace a product image (admin)", run: a.cmdUpload},
		"delete":   {usage: "delete <product-id>", help: "delete a product (admin)", run: a.cmdDeleteProduct},

		"product-new":  {usage: "product-new <image-path> | <name-en> | <name-bn> | <price> | <category> [| <description-en> [| <description-bn>]]", help: "create a product (admin)", run: a.cmdCreateProduct},
		"product-edit": {usage: "product-edit <id> | <field>=<value> [| ...]", help: "edit name-en, name-bn, price, category, description-en or description-bn (admin)", run: a.cmdEditProduct},
		"order-delete": {usage: "order-delete <order-id>", help: "delete an order (admin)", run: a.cmdDeleteOrder},

		"quit":     quit,
		"exit":     quit,
	}
}

func (a *App) cmdHelp(context.Context, []string, string) error {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		cmd := a.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.help)
	}
	return tw.Flush()
}

// enter navigates to path and reports whether the page may be shown.
func (a *App) enter(path string) bool {
	decision := a.Navigate(path)

	switch decision.Outcome {
	case guard.Allow:
		return true
	case guard.Loading:
		fmt.Fprintln(a.out, "Loading...")
	case guard.Redirect:
		fmt.Fprintf(a.out, "Please log in first. Redirected to %s\n", decision.Target)
	case guard.Denied:
		fmt.Fprintf(a.out, "Access Denied. %s Go to: %s\n", decision.Message, strings.Join(decision.Links, ", "))
	case guard.NotFound:
		fmt.Fprintf(a.out, "%s Go to: %s\n", decision.Message, strings.Join(decision.Links, ", "))
	}
	return false
}

func (a *App) cmdGo(_ context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: go <path>")
	}

	if a.enter(args[0]) {
		fmt.Fprintf(a.out, "Now at %s\n", a.location)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func (a *App) cmdProducts(ctx context.Context, args []string, _ string) error {
	if !a.enter("/products") {
		return nil
	}

	query := apiclient.ProductQuery{PageSize: 100}
	if len(args) > 0 {
		query.Category = args[0]
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.API.ListProducts(ctx, query)
	if err != nil {
		return err
	}

	if len(page.Data) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, p := range page.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", p.ID, p.Name(a.cfg.Language), p.Category, p.Price)
	}
	return tw.Flush()
}

func (a *App) cmdProduct(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: product <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !a.enter("/product/" + args[0]) {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	product, err := a.API.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	description := product.DescriptionEn
	if a.cfg.Language == "bn" && product.DescriptionBn != "" {
		description = product.DescriptionBn
	}

	fmt.Fprintf(a.out, "#%d %s (%s) %.2f\n", product.ID, product.Name(a.cfg.Language), product.Category, product.Price)
	if description != "" {
		fmt.Fprintln(a.out, description)
	}
	if product.Image != "" {
		fmt.Fprintf(a.out, "Image: %s\n", product.Image)
	}

	rating, err := a.API.GetProductRating(ctx, id)
	if err == nil && rating.ReviewCount > 0 {
		fmt.Fprintf(a.out, "Rated %.1f/5 from %d reviews\n", rating.AverageRating, rating.ReviewCount)
	}

	reviews, err := a.API.ListProductReviews(ctx, id)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		fmt.Fprintf(a.out, "  %s: %d/5 %s\n", review.Username, review.Rating, review.Comment)
	}

	return nil
}

func (a *App) cmdAdd(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: add <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	product, err := a.API.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	a.Cart.Add(*product)
	return nil
}

func (a *App) cmdRemove(_ context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a.Cart.Remove(id)
	return nil
}

func (a *App) cmdQuantity(_ context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <id> <n>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	a.Cart.UpdateQuantity(id, quantity)
	return nil
}

func (a *App) cmdCart(context.Context, []string, string) error {
	if !a.enter("/cart") {
		return nil
	}

	items := a.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\n", item.Product.ID, item.Product.Name(a.cfg.Language), item.Quantity, item.Product.Price, item.Subtotal())
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%.2f\n", a.Cart.Count(), a.Cart.Total())
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Delivery %.2f, to pay %.2f\n", a.cfg.DeliveryFee, a.Checkout.Total())
	return nil
}

func (a *App) cmdClear(context.Context, []string, string) error {
	a.Cart.Clear()
	return nil
}

func (a *App) cmdCheckout(ctx context.Context, _ []string, rest string) error {
	if a.Cart.IsEmpty() {
		a.enter(checkout.CartPath)
		return checkout.ErrEmptyCart
	}

	if !a.enter("/checkout") {
		return nil
	}

	parts := strings.Split(rest, "|")
	if len(parts) != 3 {
		return errors.New("usage: checkout <name> | <phone> | <address>")
	}

	form := a.Checkout.Prefill()
	if name := strings.TrimSpace(parts[0]); name != "" {
		form.FullName = name
	}
	form.Phone = parts[1]
	form.Address = parts[2]

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	result, err := a.Checkout.Submit(ctx, form)
	if err != nil {
		return err
	}

	a.enter(result.Next)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: login <username> <password>")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Auth.Login(ctx, args[0], args[1]); err != nil {
		return err
	}

	if a.location == guard.LoginPath {
		a.enter(guard.HomePath)
	}
	return nil
}

func (a *App) cmdRegister(ctx context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: register <username> <password>")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Auth.Register(ctx, args[0], args[1]); err != nil {
		return err
	}

	a.enter(guard.HomePath)
	return nil
}

// cmdLogout answers the expiry warning as well as plain sign-outs.
func (a *App) cmdLogout(ctx context.Context, _ []string, _ string) error {
	var err error
	if a.Session.State() == session.WarningShown {
		err = a.Session.LogoutNow(ctx)
	} else {
		err = a.Auth.Logout(ctx)
	}

	a.revisit()
	return err
}

func (a *App) cmdWhoami(context.Context, []string, string) error {
	identity := a.Auth.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s (%s)\n", identity.Username, a.Auth.Role())
	return nil
}

func (a *App) cmdContinue(ctx context.Context, _ []string, _ string) error {
	signedIn := a.Auth.Identity() != nil

	err := a.Session.Continue(ctx, a.now())
	if signedIn && a.Auth.Identity() == nil {
		a.revisit()
	}
	return err
}

func (a *App) cmdSession(context.Context, []string, string) error {
	state := a.Session.State()

	switch state {
	case session.Active:
		fmt.Fprintf(a.out, "Session active until %s\n", a.Session.ExpiryDeadline().Format("15:04:05"))
	case session.WarningShown:
		fmt.Fprintf(a.out, "Session expires in %s\n", a.Session.FormatRemaining())
	default:
		fmt.Fprintf(a.out, "Session %s\n", state)
	}
	return nil
}

func (a *App) cmdPassword(ctx context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: password <current> <new>")
	}
	if !a.enter("/profile") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	message, err := a.API.ChangePassword(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, message)
	return nil
}

func (a *App) printOrders(orders []*models.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tPHONE\tTOTAL\tSTATUS\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n", o.ID, o.CustomerName, o.CustomerPhone, o.TotalAmount, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) cmdOrders(ctx context.Context, args []string, _ string) error {
	all := len(args) > 0 && args[0] == "all"

	path := "/order-history"
	if all {
		path = "/admin/orders"
	}
	if !a.enter(path) {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	var (
		page *models.PaginatedResponse[*models.Order]
		err  error
	)
	if all {
		page, err = a.API.ListOrders(ctx, 1, 100)
	} else {
		page, err = a.API.ListMyOrders(ctx, 1, 100)
	}
	if err != nil {
		return err
	}

	return a.printOrders(page.Data)
}

func (a *App) cmdStatus(ctx context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: status <order-id> <pending|processing|completed|cancelled>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !a.enter("/admin/orders") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	order, err := a.API.UpdateOrderStatus(ctx, id, models.OrderStatus(args[1]))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order #%d is now %s\n", order.ID, order.Status)
	return nil
}

func (a *App) cmdStats(ctx context.Context, _ []string, _ string) error {
	if !a.enter("/admin") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	stats, err := a.API.GetStats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sales %.2f, orders %d, customers %d, products %d\n",
		stats.TotalSales, stats.TotalOrders, stats.TotalCustomers, stats.TotalProducts)
	return nil
}

func (a *App) cmdReview(ctx context.Context, args []string, _ string) error {
	if len(args) < 2 {
		return errors.New("usage: review <product-id> <1-5> [comment]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be 1 to 5, got %q", args[1])
	}
	if !a.enter("/profile") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	_, err = a.API.CreateReview(ctx, &models.CreateReviewRequest{
		ProductID: id,
		Rating:    rating,
		Comment:   strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Thanks for your review!")
	return nil
}

func (a *App) cmdUpload(ctx context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return errors.New("usage: upload <id> <image-path>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !a.enter("/admin/products") {
		return nil
	}

	image, err := readImage(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	product, err := a.API.UpdateProduct(ctx, id, &models.UpdateProductRequest{}, image)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Product #%d image: %s\n", product.ID, product.Image)
	return nil
}

func (a *App) cmdDeleteProduct(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: delete <product-id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !a.enter("/admin/products") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.API.DeleteProduct(ctx, id); err != nil {
		return err
	}

	a.Cart.Remove(id)
	fmt.Fprintf(a.out, "Product #%d deleted\n", id)
	return nil
}

func readImage(path string) (*models.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return &models.Image{Filename: filepath.Base(path), Data: data}, nil
}

// splitFields cuts a pipe separated line into trimmed parts.
func splitFields(rest string) []string {
	parts := strings.Split(rest, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("price must be a positive number, got %q", raw)
	}
	return price, nil
}

func (a *App) cmdCreateProduct(ctx context.Context, _ []string, rest string) error {
	parts := splitFields(rest)
	if len(parts) < 5 || len(parts) > 7 {
		return errors.New("usage: product-new <image-path> | <name-en> | <name-bn> | <price> | <category> [| <description-en> [| <description-bn>]]")
	}

	price, err := parsePrice(parts[3])
	if err != nil {
		return err
	}

	req := &models.CreateProductRequest{
		NameEn:   parts[1],
		NameBn:   parts[2],
		Price:    price,
		Category: strings.ToLower(parts[4]),
	}
	if len(parts) > 5 {
		req.DescriptionEn = parts[5]
	}
	if len(parts) > 6 {
		req.DescriptionBn = parts[6]
	}

	if !a.enter("/admin/products") {
		return nil
	}

	image, err := readImage(parts[0])
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	product, err := a.API.CreateProduct(ctx, req, image)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Product #%d created: %s\n", product.ID, product.Name(a.cfg.Language))
	return nil
}

func (a *App) cmdEditProduct(ctx context.Context, _ []string, rest string) error {
	parts := splitFields(rest)
	if len(parts) < 2 {
		return errors.New("usage: product-edit <id> | <field>=<value> [| ...]")
	}

	id, err := parseID(parts[0])
	if err != nil {
		return err
	}

	req := &models.UpdateProductRequest{}
	for _, part := range parts[1:] {
		field, value, ok := strings.Cut(part, "=")
		if !ok {
			return fmt.Errorf("expected <field>=<value>, got %q", part)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(field)) {
		case "name-en":
			req.NameEn = &value
		case "name-bn":
			req.NameBn = &value
		case "description-en":
			req.DescriptionEn = &value
		case "description-bn":
			req.DescriptionBn = &value
		case "category":
			category := strings.ToLower(value)
			req.Category = &category
		case "price":
			price, err := parsePrice(value)
			if err != nil {
				return err
			}
			req.Price = &price
		default:
			return fmt.Errorf("unknown product field %q", field)
		}
	}

	if !a.enter("/admin/products") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	product, err := a.API.UpdateProduct(ctx, id, req, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Product #%d updated: %s, %.2f, %s\n", product.ID, product.Name(a.cfg.Language), product.Price, product.Category)
	return nil
}

func (a *App) cmdDeleteOrder(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return errors.New("usage: order-delete <order-id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !a.enter("/admin/orders") {
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.API.DeleteOrder(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order #%d deleted\n", id)
	return nil
}
